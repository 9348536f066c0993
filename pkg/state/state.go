package state

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxDeviceNameLen is the longest device name a sensor record can carry.
// The status payload reserves one more byte for the NUL terminator.
const MaxDeviceNameLen = 9

// TruncateDeviceName cuts name to at most MaxDeviceNameLen bytes without
// splitting a UTF-8 sequence.
func TruncateDeviceName(name string) string {
	if len(name) <= MaxDeviceNameLen {
		return name
	}
	cut := MaxDeviceNameLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// SensorState is the latest environmental reading of the node.
type SensorState struct {
	// DeviceName identifies the node in status messages.
	DeviceName string

	// Lux is the ambient light level.
	Lux float32

	// Temperature in degrees Celsius.
	Temperature int32

	// Humidity in percent relative humidity.
	Humidity int32
}

// String returns a one-line description of the reading.
func (s SensorState) String() string {
	return fmt.Sprintf("device=%s lux=%.2f temp=%d hum=%d", s.DeviceName, s.Lux, s.Temperature, s.Humidity)
}

// BeaconState is the iBeacon identity advertised by the node.
type BeaconState struct {
	// UUID is the 16-byte proximity UUID.
	UUID uuid.UUID

	// Major groups related beacons.
	Major uint16

	// Minor identifies a beacon within its major group.
	Minor uint16

	// RSSI is the calibrated signal strength in dBm.
	RSSI int32
}

// String returns a one-line description of the identity.
func (b BeaconState) String() string {
	return fmt.Sprintf("uuid=%s major=%d minor=%d rssi=%d", b.UUID, b.Major, b.Minor, b.RSSI)
}

// Record selects which record a Change refers to.
type Record uint8

const (
	// RecordSensor is the SensorState record.
	RecordSensor Record = iota

	// RecordBeacon is the BeaconState record.
	RecordBeacon
)

// String returns the record name.
func (r Record) String() string {
	switch r {
	case RecordSensor:
		return "SENSOR"
	case RecordBeacon:
		return "BEACON"
	default:
		return "UNKNOWN"
	}
}

// Change describes a completed update. Only the field matching Record is set.
type Change struct {
	Record Record
	Sensor SensorState
	Beacon BeaconState
}

// Snapshot is a consistent view of both records.
type Snapshot struct {
	Sensor SensorState
	Beacon BeaconState
}
