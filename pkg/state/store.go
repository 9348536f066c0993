package state

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Store errors.
var (
	ErrDeviceNameTooLong = errors.New("device name too long")
)

// ChangeListener is called after a record has been updated.
type ChangeListener func(Change)

// Store owns the sensor and beacon records.
// It is safe for concurrent use by one or more writers and any number of readers.
type Store struct {
	mu sync.RWMutex

	sensor SensorState
	beacon BeaconState

	listenersMu sync.RWMutex
	listeners   []ChangeListener
}

// NewStore creates a store with zero readings for the given device name
// and beacon uuid. A name longer than MaxDeviceNameLen is truncated on a
// rune boundary.
func NewStore(deviceName string, beaconID uuid.UUID) *Store {
	return &Store{
		sensor: SensorState{DeviceName: TruncateDeviceName(deviceName)},
		beacon: BeaconState{UUID: beaconID},
	}
}

// OnChange registers a listener for completed updates.
// Listeners are invoked on the writer's goroutine after the lock is released.
func (s *Store) OnChange(listener ChangeListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// UpdateSensorState overwrites lux, humidity and temperature in one step.
func (s *Store) UpdateSensorState(lux float32, humidity, temperature int32) {
	s.mu.Lock()
	s.sensor.Lux = lux
	s.sensor.Humidity = humidity
	s.sensor.Temperature = temperature
	snapshot := s.sensor
	s.mu.Unlock()

	s.notify(Change{Record: RecordSensor, Sensor: snapshot})
}

// UpdateBeaconState overwrites the beacon identity in one step.
// A uuid.Nil id keeps the current uuid and only updates major, minor and rssi.
func (s *Store) UpdateBeaconState(id uuid.UUID, major, minor uint16, rssi int32) {
	s.mu.Lock()
	if id != uuid.Nil {
		s.beacon.UUID = id
	}
	s.beacon.Major = major
	s.beacon.Minor = minor
	s.beacon.RSSI = rssi
	snapshot := s.beacon
	s.mu.Unlock()

	s.notify(Change{Record: RecordBeacon, Beacon: snapshot})
}

// SetDeviceName changes the name reported in sensor status messages.
func (s *Store) SetDeviceName(name string) error {
	if len(name) > MaxDeviceNameLen {
		return ErrDeviceNameTooLong
	}

	s.mu.Lock()
	s.sensor.DeviceName = name
	snapshot := s.sensor
	s.mu.Unlock()

	s.notify(Change{Record: RecordSensor, Sensor: snapshot})
	return nil
}

// SensorState returns a copy of the current sensor reading.
func (s *Store) SensorState() SensorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sensor
}

// BeaconState returns a copy of the current beacon identity.
func (s *Store) BeaconState() BeaconState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.beacon
}

// Snapshot returns both records taken under a single lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Sensor: s.sensor, Beacon: s.beacon}
}

func (s *Store) notify(change Change) {
	s.listenersMu.RLock()
	listeners := make([]ChangeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l(change)
	}
}
