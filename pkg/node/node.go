package node

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/dispatch"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/lifecycle"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/persistence"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/state"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/version"
)

// Node errors.
var (
	ErrAlreadyStarted = errors.New("node already started")
	ErrNotStarted     = errors.New("node not started")
)

// RunState is the node service state.
type RunState uint8

const (
	RunStateIdle RunState = iota
	RunStateStarting
	RunStateRunning
	RunStateStopped
	RunStateFailed
)

func (s RunState) String() string {
	switch s {
	case RunStateIdle:
		return "IDLE"
	case RunStateStarting:
		return "STARTING"
	case RunStateRunning:
		return "RUNNING"
	case RunStateStopped:
		return "STOPPED"
	case RunStateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Node is a Bluetooth mesh sensor node.
type Node struct {
	config    Config
	logger    *slog.Logger
	telemetry log.Logger
	nodeID    string

	stack       mesh.Stack
	store       *state.Store
	dispatcher  *dispatch.Dispatcher
	controller  *lifecycle.Controller
	composition *mesh.Composition
	provision   *mesh.ProvisionInfo
	file        *persistence.NodeStateStore

	mu         sync.Mutex
	runState   RunState
	cancel     context.CancelFunc
	lastBeacon persistence.BeaconRecord
}

// NewNode creates a node on top of stack. Persisted device name and beacon
// identity override the configured ones.
func NewNode(stack mesh.Stack, config Config) (*Node, error) {
	if stack == nil {
		return nil, fmt.Errorf("%w: nil stack", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	fw, _ := version.Parse(config.FirmwareVersion)

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	n := &Node{
		config:    config,
		logger:    logger,
		telemetry: log.OrNoop(config.Telemetry),
		stack:     stack,
	}

	deviceUUID := mesh.DeviceUUIDFromAddress(config.UUIDPrefix, config.Address)
	n.nodeID = config.NodeID
	if n.nodeID == "" {
		n.nodeID = deviceUUID.String()
	}

	beacon := persistence.BeaconRecord{UUID: config.BeaconUUID, Major: config.BeaconMajor, Minor: config.BeaconMinor}
	name := config.DeviceName
	if config.StatePath != "" {
		n.file = persistence.NewNodeStateStore(config.StatePath)
		saved, err := n.file.Load()
		if err != nil {
			// Updates load the file first, so an unreadable one is replaced.
			logger.Warn("discarding unreadable node state", "path", config.StatePath, "error", err)
			if err := n.file.Clear(); err != nil {
				logger.Warn("failed to remove node state", "path", config.StatePath, "error", err)
			}
		} else if saved != nil {
			n.discardIncompatibleNetwork(saved, fw)
			if saved.DeviceName != "" && len(saved.DeviceName) <= state.MaxDeviceNameLen {
				name = saved.DeviceName
			}
			if saved.Beacon != nil {
				beacon = *saved.Beacon
			}
		}
	}

	n.store = state.NewStore(name, beacon.UUID)
	n.store.UpdateBeaconState(beacon.UUID, beacon.Major, beacon.Minor, 0)
	n.lastBeacon = beacon
	n.store.OnChange(n.onStoreChange)

	n.composition = NewComposition(config.ProductID, fw)
	n.provision = &mesh.ProvisionInfo{DeviceUUID: deviceUUID, Name: name}

	n.dispatcher = dispatch.New(dispatch.Config{
		Store:     n.store,
		Sender:    stack,
		Logger:    logger.With("component", "dispatch"),
		Telemetry: n.telemetry,
		NodeID:    n.nodeID,
	})

	var network lifecycle.NetworkStore
	if n.file != nil {
		network = &networkStore{file: n.file, firmware: fw.String()}
	}
	n.controller = lifecycle.New(lifecycle.Config{
		Stack:         stack,
		ModelCallback: n.handleModelOperation,
		Provision:     n.provision,
		Composition:   n.composition,
		Bearers:       config.Bearers,
		Network:       network,
		Logger:        logger.With("component", "lifecycle"),
		Telemetry:     n.telemetry,
		NodeID:        n.nodeID,
	})

	return n, nil
}

// discardIncompatibleNetwork drops network info written by firmware with a
// different major version, whose composition data may differ.
func (n *Node) discardIncompatibleNetwork(saved *persistence.NodeState, fw version.Firmware) {
	if saved.Network == nil || saved.Firmware == "" {
		return
	}
	prev, err := version.Parse(saved.Firmware)
	if err == nil && prev.Compatible(fw) {
		return
	}

	n.logger.Warn("discarding network info from incompatible firmware",
		"saved", saved.Firmware,
		"current", fw.String(),
	)
	saved.Network = nil
	if err := n.file.Save(saved); err != nil {
		n.logger.Warn("failed to clear network info", "error", err)
	}
}

// Start initializes the stack and enables provisioning.
func (n *Node) Start(ctx context.Context) error {
	n.mu.Lock()
	if n.runState != RunStateIdle {
		n.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	n.runState = RunStateStarting
	n.cancel = cancel
	n.mu.Unlock()

	n.logger.Info("starting mesh node",
		"node_id", n.nodeID,
		"uuid", n.provision.DeviceUUID,
		"name", n.provision.Name,
		"firmware", n.config.FirmwareVersion,
	)

	if err := n.controller.Initialize(ctx); err != nil {
		cancel()
		n.setRunState(RunStateFailed)
		return err
	}

	n.setRunState(RunStateRunning)
	return nil
}

// Stop stops the node. Inbound model messages are dropped from then on.
// The stack is owned by the caller and stays open.
func (n *Node) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.runState != RunStateRunning {
		return ErrNotStarted
	}
	n.runState = RunStateStopped
	n.cancel()
	n.logger.Info("mesh node stopped", "node_id", n.nodeID)
	return nil
}

// handleModelOperation forwards model events to the dispatcher while the
// node is running.
func (n *Node) handleModelOperation(evt mesh.ModelOperationEvent) {
	if rs := n.RunState(); rs != RunStateRunning {
		n.logger.Debug("dropping model event", "state", rs, "opcode", evt.Opcode)
		return
	}
	n.dispatcher.HandleModelOperation(evt)
}

func (n *Node) setRunState(s RunState) {
	n.mu.Lock()
	n.runState = s
	n.mu.Unlock()
}

// RunState returns the service state.
func (n *Node) RunState() RunState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.runState
}

// Store returns the state store sensor drivers write to.
func (n *Node) Store() *state.Store { return n.store }

// Dispatcher returns the model dispatcher.
func (n *Node) Dispatcher() *dispatch.Dispatcher { return n.dispatcher }

// Controller returns the lifecycle controller.
func (n *Node) Controller() *lifecycle.Controller { return n.controller }

// Composition returns the composition registered with the stack.
func (n *Node) Composition() *mesh.Composition { return n.composition }

// DeviceUUID returns the UUID advertised while unprovisioned.
func (n *Node) DeviceUUID() uuid.UUID { return n.provision.DeviceUUID }

// NodeID returns the telemetry node identifier.
func (n *Node) NodeID() string { return n.nodeID }

// SetDeviceName changes the device name in sensor status messages and, once
// the stack is up, the advertised unprovisioned name.
func (n *Node) SetDeviceName(name string) error {
	if err := n.store.SetDeviceName(name); err != nil {
		return err
	}
	if n.file != nil {
		if err := n.file.Update(func(s *persistence.NodeState) { s.DeviceName = name }); err != nil {
			n.logger.Warn("failed to persist device name", "error", err)
		}
	}
	if err := n.controller.SetDeviceName(name); err != nil && !errors.Is(err, lifecycle.ErrNotInitialized) {
		return err
	}
	return nil
}

// onStoreChange records store updates and persists beacon identity changes.
func (n *Node) onStoreChange(change state.Change) {
	entity := log.StateEntitySensor
	desc := change.Sensor.String()
	if change.Record == state.RecordBeacon {
		entity = log.StateEntityBeacon
		desc = change.Beacon.String()
	}

	n.telemetry.Log(log.Event{
		Timestamp: time.Now(),
		NodeID:    n.nodeID,
		Direction: log.DirectionLocal,
		Layer:     log.LayerStore,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			NewState: desc,
			Reason:   "update",
		},
	})

	if change.Record != state.RecordBeacon || n.file == nil {
		return
	}

	record := persistence.BeaconRecord{UUID: change.Beacon.UUID, Major: change.Beacon.Major, Minor: change.Beacon.Minor}
	n.mu.Lock()
	changed := record != n.lastBeacon
	n.lastBeacon = record
	n.mu.Unlock()
	if !changed {
		return
	}

	if err := n.file.Update(func(s *persistence.NodeState) { s.Beacon = &record }); err != nil {
		n.logger.Warn("failed to persist beacon identity", "error", err)
	}
}
