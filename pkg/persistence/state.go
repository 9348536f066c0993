package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// NodeState contains the runtime state for a mesh node.
type NodeState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Firmware is the firmware version that last wrote network info.
	Firmware string `json:"firmware,omitempty"`

	// DeviceName is the name reported in sensor status messages.
	DeviceName string `json:"device_name,omitempty"`

	// Network is set once the node has been provisioned.
	Network *NetworkRecord `json:"network,omitempty"`

	// Beacon is the last known iBeacon identity.
	Beacon *BeaconRecord `json:"beacon,omitempty"`
}

// NetworkRecord contains the provisioning data of the node.
type NetworkRecord struct {
	NetIdx        uint16    `json:"net_idx"`
	Addr          uint16    `json:"addr"`
	Flags         uint8     `json:"flags,omitempty"`
	IVIndex       uint32    `json:"iv_index"`
	ProvisionedAt time.Time `json:"provisioned_at"`
}

// BeaconRecord contains the iBeacon identity.
type BeaconRecord struct {
	UUID  uuid.UUID `json:"uuid"`
	Major uint16    `json:"major"`
	Minor uint16    `json:"minor"`
}

// NodeStateStore manages persistence of node state to a JSON file.
type NodeStateStore struct {
	mu   sync.Mutex
	path string
}

// NewNodeStateStore creates a new node state store.
func NewNodeStateStore(path string) *NodeStateStore {
	return &NodeStateStore{path: path}
}

// Save persists the node state to disk.
func (s *NodeStateStore) Save(state *NodeState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(state)
}

func (s *NodeStateStore) save(state *NodeState) error {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	state.SavedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the node state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *NodeStateStore) Load() (*NodeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *NodeStateStore) load() (*NodeState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &NodeState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Update loads the state, applies fn and saves the result under one lock.
// A missing file starts from an empty state.
func (s *NodeStateStore) Update(fn func(state *NodeState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	if state == nil {
		state = &NodeState{}
	}
	fn(state)
	return s.save(state)
}

// Clear removes the state file.
func (s *NodeStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
