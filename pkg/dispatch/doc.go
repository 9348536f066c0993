// Package dispatch routes inbound vendor model messages to handlers and
// sends the status response.
//
// Routing is a table keyed by opcode. The default table answers the two
// get operations of the node:
//
//	SensorGet -> SensorStatus (device name, lux, temperature, humidity)
//	BeaconGet -> BeaconStatus (uuid, major, minor, rssi)
//
// Handlers read a snapshot of the state store; they never mutate it.
// Opcodes without a handler are dropped without a response.
//
// The mesh stack delivers model callbacks fire-and-forget, so
// HandleModelOperation absorbs every error after recording it.
// Dispatch returns the outcome explicitly for callers that care.
package dispatch
