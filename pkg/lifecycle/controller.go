package lifecycle

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
)

// Config configures a Controller.
type Config struct {
	// Stack is the mesh stack to drive.
	Stack mesh.Stack

	// ModelCallback receives model operations, usually
	// (*dispatch.Dispatcher).HandleModelOperation.
	ModelCallback mesh.ModelCallback

	// Provision and Composition are handed to the stack at init.
	Provision   *mesh.ProvisionInfo
	Composition *mesh.Composition

	// Bearers to enable for provisioning. Zero defaults to PB-ADV.
	Bearers mesh.Bearer

	// Network persists provisioning results. Nil disables persistence.
	Network NetworkStore

	// Logger receives operational logs. Nil disables logging.
	Logger *slog.Logger

	// Telemetry receives provisioning, config and state events.
	Telemetry log.Logger

	// NodeID tags telemetry events.
	NodeID string

	// OnStateChange is called after every state transition.
	OnStateChange func(old, new State)
}

// Controller drives stack initialization and reacts to stack events.
type Controller struct {
	cfg       Config
	logger    *slog.Logger
	telemetry log.Logger

	mu        sync.RWMutex
	state     State
	provState ProvisioningState
	network   *NetworkInfo
}

// New creates a Controller in StateUninitialized.
func New(cfg Config) *Controller {
	if cfg.Bearers == 0 {
		cfg.Bearers = mesh.BearerADV
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		cfg:       cfg,
		logger:    logger,
		telemetry: log.OrNoop(cfg.Telemetry),
	}
}

// State returns the controller state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// ProvisioningState returns the provisioning state.
func (c *Controller) ProvisioningState() ProvisioningState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provState
}

// NetworkInfo returns the network parameters, if provisioned.
func (c *Controller) NetworkInfo() (NetworkInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.network == nil {
		return NetworkInfo{}, false
	}
	return *c.network, true
}

// Initialize registers the callbacks, initializes the stack and enables
// provisioning, stopping at the first failure.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateUninitialized:
	case StateFailed:
		c.mu.Unlock()
		return ErrInitFailed
	default:
		c.mu.Unlock()
		return ErrAlreadyInitialized
	}
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	c.logger.Info("mesh node initialization")
	stack := c.cfg.Stack

	if err := c.register(stack); err != nil {
		return c.fail(StageRegister, err)
	}
	c.setState(StateStackRegistered, "callbacks registered")

	if err := stack.Init(c.cfg.Provision, c.cfg.Composition); err != nil {
		return c.fail(StageStackInit, err)
	}

	if err := stack.EnableProvisioning(c.cfg.Bearers); err != nil {
		return c.fail(StageEnableProvisioning, err)
	}
	c.setState(StateProvisioningEnabled, "provisioning enabled on "+c.cfg.Bearers.String())

	c.restoreNetwork()

	c.logger.Info("mesh node initialization complete", "state", c.State())
	return nil
}

func (c *Controller) register(stack mesh.Stack) error {
	if err := stack.RegisterProvisioningCallback(c.HandleProvisioningEvent); err != nil {
		return err
	}
	if err := stack.RegisterConfigServerCallback(c.HandleConfigServerEvent); err != nil {
		return err
	}
	model := c.cfg.ModelCallback
	if model == nil {
		model = func(mesh.ModelOperationEvent) {}
	}
	return stack.RegisterModelCallback(model)
}

func (c *Controller) fail(stage Stage, err error) error {
	initErr := &InitError{Stage: stage, Err: err}
	c.logger.Error("mesh node initialization failed", "stage", stage.String(), "error", err)
	c.setState(StateFailed, initErr.Error())

	c.telemetry.Log(log.Event{
		Timestamp: time.Now(),
		NodeID:    c.cfg.NodeID,
		Direction: log.DirectionLocal,
		Layer:     log.LayerStack,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerStack,
			Message: err.Error(),
			Context: stage.String(),
		},
	})
	return initErr
}

// completionFailed reports a stack completion event carrying a non-zero
// status code. The lifecycle state is left unchanged.
func (c *Controller) completionFailed(err *mesh.StackError) {
	c.logger.Error("mesh stack operation failed", "op", err.Op, "error", err)

	code := err.Code
	c.telemetry.Log(log.Event{
		Timestamp: time.Now(),
		NodeID:    c.cfg.NodeID,
		Direction: log.DirectionIn,
		Layer:     log.LayerStack,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerStack,
			Message: err.Error(),
			Code:    &code,
			Context: err.Op,
		},
	})
}

// restoreNetwork reloads persisted network parameters so a restarted node
// reports itself provisioned.
func (c *Controller) restoreNetwork() {
	if c.cfg.Network == nil {
		return
	}
	info, err := c.cfg.Network.LoadNetwork()
	if err != nil {
		c.logger.Warn("failed to load network info", "error", err)
		return
	}
	if info == nil {
		return
	}

	c.mu.Lock()
	c.network = info
	c.provState = Provisioned
	c.mu.Unlock()

	c.logger.Info("restored network info", "net_idx", info.NetIdx, "addr", info.Addr)
	c.setState(StateProvisioned, "restored from storage")
}

// setState transitions to next and reports the change outside the lock.
func (c *Controller) setState(next State, reason string) {
	c.mu.Lock()
	old := c.state
	c.state = next
	c.mu.Unlock()

	if old == next {
		return
	}

	c.telemetry.Log(log.Event{
		Timestamp: time.Now(),
		NodeID:    c.cfg.NodeID,
		Direction: log.DirectionLocal,
		Layer:     log.LayerStack,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityStack,
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})

	if c.cfg.OnStateChange != nil {
		c.cfg.OnStateChange(old, next)
	}
}

func (c *Controller) setProvisioningState(next ProvisioningState, reason string) {
	c.mu.Lock()
	old := c.provState
	c.provState = next
	c.mu.Unlock()

	if old == next {
		return
	}

	c.telemetry.Log(log.Event{
		Timestamp: time.Now(),
		NodeID:    c.cfg.NodeID,
		Direction: log.DirectionLocal,
		Layer:     log.LayerStack,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityProvisioning,
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}

func (c *Controller) logProvisioning(evt mesh.ProvisioningEvent) {
	p := &log.ProvisioningEvent{Event: evt.Type.String()}
	switch evt.Type {
	case mesh.EventRegisterComplete, mesh.EventProvisioningEnableComplete, mesh.EventUnprovisionedNameSetComplete:
		code := evt.ErrCode
		p.ErrCode = &code
	case mesh.EventLinkOpen, mesh.EventLinkClose:
		p.Bearer = evt.Bearer.String()
	case mesh.EventProvisioningComplete:
		p.NetIdx = evt.NetIdx
		p.Addr = evt.Addr
		p.Flags = evt.Flags
		p.IVIndex = evt.IVIndex
	}

	c.telemetry.Log(log.Event{
		Timestamp:    time.Now(),
		NodeID:       c.cfg.NodeID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerStack,
		Category:     log.CategoryState,
		Provisioning: p,
	})
}

func (c *Controller) logConfig(evt *log.ConfigEvent) {
	c.telemetry.Log(log.Event{
		Timestamp: time.Now(),
		NodeID:    c.cfg.NodeID,
		Direction: log.DirectionIn,
		Layer:     log.LayerStack,
		Category:  log.CategoryConfig,
		Config:    evt,
	})
}

func keyHex(key [16]byte) string {
	return hex.EncodeToString(key[:])
}

func hex3(v uint16) string { return fmt.Sprintf("0x%03x", v) }
func hex4(v uint16) string { return fmt.Sprintf("0x%04x", v) }
