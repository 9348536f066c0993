// Package sim provides an in-process mesh stack for development and tests.
//
// The simulated stack accepts the same registrations as the real one,
// delivers every callback from a single goroutine in the order events were
// injected, and records outbound model messages instead of transmitting
// them. Provisioner-side actions (link open, provisioning data, app key,
// model bind) are driven by the Provision, AddAppKey and BindModel helpers.
package sim

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// DefaultQueueSize is the initial event queue capacity.
const DefaultQueueSize = 64

// ErrPayloadTooLarge is returned when a message exceeds the access payload limit.
var ErrPayloadTooLarge = errors.New("payload exceeds access payload limit")

// Operation names accepted by Fail.
const (
	OpRegister           = "Register"
	OpInit               = "Init"
	OpEnableProvisioning = "EnableProvisioning"
	OpSetName            = "SetUnprovisionedDeviceName"
	OpSend               = "SendModelMessage"
)

// Config configures a simulated stack.
type Config struct {
	// QueueSize is the initial event queue capacity. The queue grows past
	// it, so callbacks may inject events without blocking delivery.
	// Zero uses DefaultQueueSize.
	QueueSize int

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger

	// OnSend, if set, is called for every recorded outbound message.
	OnSend func(Sent)
}

// Sent is a recorded outbound model message.
type Sent struct {
	Model   mesh.Model
	Ctx     mesh.MessageContext
	Opcode  wire.Opcode
	Payload []byte
	At      time.Time
}

// Stack is a simulated mesh stack.
type Stack struct {
	cfg    Config
	logger *slog.Logger

	mu          sync.Mutex
	provCB      mesh.ProvisioningCallback
	cfgCB       mesh.ConfigServerCallback
	modelCB     mesh.ModelCallback
	prov        *mesh.ProvisionInfo
	comp        *mesh.Composition
	initialized bool
	bearers     mesh.Bearer
	provisioned bool
	netIdx      uint16
	addr        uint16
	name        string
	failures    map[string]error
	sent        []Sent

	// queueMu guards closed and pending. Enqueueing never blocks, so
	// callbacks running on the delivery goroutine can emit further events.
	queueMu sync.Mutex
	ready   *sync.Cond
	closed  bool
	pending []func()
	done    chan struct{}
}

// New creates a simulated stack and starts its delivery goroutine.
func New(cfg Config) *Stack {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Stack{
		cfg:      cfg,
		logger:   logger,
		failures: make(map[string]error),
		pending:  make([]func(), 0, cfg.QueueSize),
		done:     make(chan struct{}),
	}
	s.ready = sync.NewCond(&s.queueMu)
	go s.run()
	return s
}

func (s *Stack) run() {
	defer close(s.done)
	for {
		s.queueMu.Lock()
		for len(s.pending) == 0 && !s.closed {
			s.ready.Wait()
		}
		if len(s.pending) == 0 {
			s.queueMu.Unlock()
			return
		}
		fn := s.pending[0]
		s.pending[0] = nil
		s.pending = s.pending[1:]
		s.queueMu.Unlock()

		fn()
	}
}

// Close stops event delivery after the queued events have been delivered.
func (s *Stack) Close() error {
	s.queueMu.Lock()
	if s.closed {
		s.queueMu.Unlock()
		return nil
	}
	s.closed = true
	s.ready.Broadcast()
	s.queueMu.Unlock()

	<-s.done
	return nil
}

// enqueue schedules fn on the delivery goroutine. It never blocks.
func (s *Stack) enqueue(fn func()) error {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	if s.closed {
		return mesh.ErrClosed
	}
	s.pending = append(s.pending, fn)
	s.ready.Signal()
	return nil
}

// Flush blocks until every event queued before the call has been delivered.
// It must not be called from a callback.
func (s *Stack) Flush() {
	ch := make(chan struct{})
	if err := s.enqueue(func() { close(ch) }); err != nil {
		return
	}
	<-ch
}

// Fail makes the named operation return err until cleared with a nil err.
func (s *Stack) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Stack) failure(op string) error {
	return s.failures[op]
}

// RegisterProvisioningCallback implements mesh.Stack.
func (s *Stack) RegisterProvisioningCallback(cb mesh.ProvisioningCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(OpRegister); err != nil {
		return err
	}
	s.provCB = cb
	return nil
}

// RegisterConfigServerCallback implements mesh.Stack.
func (s *Stack) RegisterConfigServerCallback(cb mesh.ConfigServerCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(OpRegister); err != nil {
		return err
	}
	s.cfgCB = cb
	return nil
}

// RegisterModelCallback implements mesh.Stack.
func (s *Stack) RegisterModelCallback(cb mesh.ModelCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(OpRegister); err != nil {
		return err
	}
	s.modelCB = cb
	return nil
}

// Init implements mesh.Stack. A register-complete event follows.
func (s *Stack) Init(prov *mesh.ProvisionInfo, comp *mesh.Composition) error {
	s.mu.Lock()
	if err := s.failure(OpInit); err != nil {
		s.mu.Unlock()
		return err
	}
	if prov == nil || comp == nil {
		s.mu.Unlock()
		return fmt.Errorf("sim: init requires provisioning info and composition")
	}
	s.prov = prov
	s.comp = comp
	s.name = prov.Name
	s.initialized = true
	s.mu.Unlock()

	s.logger.Debug("sim: stack initialized", "uuid", prov.DeviceUUID, "models", len(comp.Models()))
	return s.emitProvisioning(mesh.ProvisioningEvent{Type: mesh.EventRegisterComplete})
}

// EnableProvisioning implements mesh.Stack.
func (s *Stack) EnableProvisioning(bearers mesh.Bearer) error {
	s.mu.Lock()
	if err := s.failure(OpEnableProvisioning); err != nil {
		s.mu.Unlock()
		return err
	}
	if !s.initialized {
		s.mu.Unlock()
		return mesh.ErrNotInitialized
	}
	s.bearers = bearers
	s.mu.Unlock()

	return s.emitProvisioning(mesh.ProvisioningEvent{Type: mesh.EventProvisioningEnableComplete})
}

// SetUnprovisionedDeviceName implements mesh.Stack.
func (s *Stack) SetUnprovisionedDeviceName(name string) error {
	s.mu.Lock()
	if err := s.failure(OpSetName); err != nil {
		s.mu.Unlock()
		return err
	}
	if !s.initialized {
		s.mu.Unlock()
		return mesh.ErrNotInitialized
	}
	s.name = name
	s.mu.Unlock()

	return s.emitProvisioning(mesh.ProvisioningEvent{Type: mesh.EventUnprovisionedNameSetComplete})
}

// SendModelMessage implements mesh.Sender by recording the message.
func (s *Stack) SendModelMessage(model *mesh.Model, ctx *mesh.MessageContext, op wire.Opcode, payload []byte) error {
	s.mu.Lock()
	if err := s.failure(OpSend); err != nil {
		s.mu.Unlock()
		return err
	}
	if !s.initialized {
		s.mu.Unlock()
		return mesh.ErrNotInitialized
	}
	if len(payload)+op.Size() > wire.MaxAccessPayload {
		s.mu.Unlock()
		return ErrPayloadTooLarge
	}

	sent := Sent{
		Opcode:  op,
		Payload: bytes.Clone(payload),
		At:      time.Now(),
	}
	if model != nil {
		sent.Model = *model
	}
	if ctx != nil {
		sent.Ctx = *ctx
	}
	s.sent = append(s.sent, sent)
	onSend := s.cfg.OnSend
	s.mu.Unlock()

	s.logger.Debug("sim: model message sent", "opcode", op, "dst", sent.Ctx.Addr, "len", len(payload))
	if onSend != nil {
		onSend(sent)
	}
	return nil
}

// Sent returns a copy of the recorded outbound messages.
func (s *Stack) Sent() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Sent, len(s.sent))
	copy(out, s.sent)
	return out
}

// ResetSent discards the recorded outbound messages.
func (s *Stack) ResetSent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}

// Provisioned reports whether the simulated node holds network parameters.
func (s *Stack) Provisioned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provisioned
}

// Address returns the primary unicast address, zero when unprovisioned.
func (s *Stack) Address() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Name returns the advertised unprovisioned device name.
func (s *Stack) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Stack) emitProvisioning(evt mesh.ProvisioningEvent) error {
	return s.enqueue(func() {
		s.mu.Lock()
		cb := s.provCB
		s.mu.Unlock()
		if cb != nil {
			cb(evt)
		}
	})
}

func (s *Stack) emitConfig(evt mesh.ConfigServerEvent) error {
	return s.enqueue(func() {
		s.mu.Lock()
		cb := s.cfgCB
		s.mu.Unlock()
		if cb != nil {
			cb(evt)
		}
	})
}
