// Package persistence stores the node's runtime state across restarts.
//
// The state is a single JSON file holding the network parameters received
// at provisioning, the beacon identity and the configured device name.
// Sensor readings are not persisted; they are refreshed by the sensor
// drivers after boot.
package persistence
