package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/state"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// ErrInvalidRequest is returned for requests without a model or context.
var ErrInvalidRequest = errors.New("request has no model or message context")

// StateReader is the read side of the state store.
type StateReader interface {
	SensorState() state.SensorState
	BeaconState() state.BeaconState
}

// Compile-time check: *state.Store implements StateReader.
var _ StateReader = (*state.Store)(nil)

// Request is an inbound model operation.
type Request struct {
	Opcode  wire.Opcode
	Ctx     *mesh.MessageContext
	Model   *mesh.Model
	Payload []byte
}

// Response is the status message a handler wants sent back.
type Response struct {
	Opcode  wire.Opcode
	Payload []byte

	// Fields describes the payload for telemetry.
	Fields map[string]any
}

// Handler builds the response to a request.
type Handler func(req *Request) (*Response, error)

// Result is the outcome of a dispatch.
type Result uint8

const (
	// ResultSent means a status message was handed to the stack.
	ResultSent Result = iota

	// ResultUnhandled means no handler exists for the opcode.
	ResultUnhandled

	// ResultHandlerFailed means the handler returned an error; nothing was sent.
	ResultHandlerFailed

	// ResultSendFailed means the stack rejected the status message.
	ResultSendFailed
)

func (r Result) String() string {
	switch r {
	case ResultSent:
		return "SENT"
	case ResultUnhandled:
		return "UNHANDLED"
	case ResultHandlerFailed:
		return "HANDLER_FAILED"
	case ResultSendFailed:
		return "SEND_FAILED"
	default:
		return fmt.Sprintf("RESULT(%d)", uint8(r))
	}
}

// SendError reports a status message the stack failed to send.
type SendError struct {
	Opcode wire.Opcode
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send message %s: %v", e.Opcode, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Config configures a Dispatcher.
type Config struct {
	// Store supplies the state snapshots served by the default handlers.
	Store StateReader

	// Sender sends status responses. Usually the mesh stack.
	Sender mesh.Sender

	// Logger receives operational logs. Nil disables logging.
	Logger *slog.Logger

	// Telemetry receives message and error events. Nil disables telemetry.
	Telemetry log.Logger

	// NodeID tags telemetry events.
	NodeID string
}

// Dispatcher routes model operations by opcode.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[wire.Opcode]Handler

	store     StateReader
	sender    mesh.Sender
	logger    *slog.Logger
	telemetry log.Logger
	nodeID    string
}

// New creates a Dispatcher with the sensor and beacon get handlers
// registered.
func New(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	d := &Dispatcher{
		handlers:  make(map[wire.Opcode]Handler),
		store:     cfg.Store,
		sender:    cfg.Sender,
		logger:    logger,
		telemetry: log.OrNoop(cfg.Telemetry),
		nodeID:    cfg.NodeID,
	}

	d.Register(wire.OpSensorGet, d.sensorStatus)
	d.Register(wire.OpBeaconGet, d.beaconStatus)
	return d
}

// Register installs h for op, replacing any existing handler.
// A nil handler removes the route.
func (d *Dispatcher) Register(op wire.Opcode, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if h == nil {
		delete(d.handlers, op)
		return
	}
	d.handlers[op] = h
}

// Handles reports whether a handler exists for op.
func (d *Dispatcher) Handles(op wire.Opcode) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[op]
	return ok
}

// HandleModelOperation is the model callback registered with the stack.
// Errors are logged and recorded, never returned.
func (d *Dispatcher) HandleModelOperation(evt mesh.ModelOperationEvent) {
	_, _ = d.Dispatch(context.Background(), &Request{
		Opcode:  evt.Opcode,
		Ctx:     evt.Ctx,
		Model:   evt.Model,
		Payload: evt.Payload,
	})
}

// Dispatch routes one request. At most one status message is sent; a failed
// send is not retried.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (Result, error) {
	if req == nil || req.Model == nil || req.Ctx == nil {
		return ResultUnhandled, ErrInvalidRequest
	}
	start := time.Now()
	kind := wire.Classify(req.Opcode)

	d.telemetry.Log(log.Event{
		Timestamp: start,
		NodeID:    d.nodeID,
		Direction: log.DirectionIn,
		Layer:     log.LayerModel,
		Category:  log.CategoryMessage,
		Address:   req.Model.ElementAddr,
		Message: &log.MessageEvent{
			Opcode:      req.Opcode,
			Kind:        kind,
			Src:         req.Ctx.Addr,
			Dst:         req.Ctx.RecvDst,
			NetIdx:      req.Ctx.NetIdx,
			AppIdx:      req.Ctx.AppIdx,
			PayloadSize: len(req.Payload),
		},
	})

	d.mu.RLock()
	h, ok := d.handlers[req.Opcode]
	d.mu.RUnlock()
	if !ok {
		d.logger.Debug("unhandled opcode", "opcode", req.Opcode, "src", req.Ctx.Addr, "model", req.Model)
		return ResultUnhandled, nil
	}

	if err := ctx.Err(); err != nil {
		return ResultUnhandled, err
	}

	resp, err := h(req)
	if err != nil {
		d.recordError(req, "handle "+kind.String(), err, nil)
		return ResultHandlerFailed, err
	}

	if err := d.sender.SendModelMessage(req.Model, req.Ctx, resp.Opcode, resp.Payload); err != nil {
		sendErr := &SendError{Opcode: resp.Opcode, Err: err}
		d.logger.Error("failed to send message", "opcode", resp.Opcode, "dst", req.Ctx.Addr, "error", err)
		d.recordError(req, "send status", err, &resp.Opcode)
		return ResultSendFailed, sendErr
	}

	elapsed := time.Since(start)
	d.telemetry.Log(log.Event{
		Timestamp: time.Now(),
		NodeID:    d.nodeID,
		Direction: log.DirectionOut,
		Layer:     log.LayerModel,
		Category:  log.CategoryMessage,
		Address:   req.Model.ElementAddr,
		Message: &log.MessageEvent{
			Opcode:         resp.Opcode,
			Kind:           kind,
			Src:            req.Model.ElementAddr,
			Dst:            req.Ctx.Addr,
			NetIdx:         req.Ctx.NetIdx,
			AppIdx:         req.Ctx.AppIdx,
			PayloadSize:    len(resp.Payload),
			Payload:        resp.Fields,
			ProcessingTime: &elapsed,
		},
	})
	return ResultSent, nil
}

func (d *Dispatcher) recordError(req *Request, what string, err error, op *wire.Opcode) {
	d.telemetry.Log(log.Event{
		Timestamp: time.Now(),
		NodeID:    d.nodeID,
		Direction: log.DirectionLocal,
		Layer:     log.LayerModel,
		Category:  log.CategoryError,
		Address:   req.Model.ElementAddr,
		Error: &log.ErrorEventData{
			Layer:   log.LayerModel,
			Message: err.Error(),
			Context: what,
			Opcode:  op,
		},
	})
}
