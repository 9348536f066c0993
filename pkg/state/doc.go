// Package state holds the node's cached model state.
//
// The Store owns two records:
//
//   - SensorState: the latest environmental reading (lux, temperature,
//     humidity) tagged with the device name.
//   - BeaconState: the node's iBeacon identity (uuid, major, minor, rssi).
//
// Sensor acquisition code writes through UpdateSensorState and
// UpdateBeaconState at its own cadence. The model dispatcher reads through
// SensorState and BeaconState while serving get requests from the mesh.
// Readers always receive a copy taken under the store lock, so a reader
// never observes a partially applied update.
//
//	store := state.NewStore("node-01", beaconID)
//	store.UpdateSensorState(12.5, 40, 22)
//
//	reading := store.SensorState() // independent copy
package state
