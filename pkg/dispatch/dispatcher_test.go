package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh/mocks"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/state"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

func sensorModel() *mesh.Model {
	return &mesh.Model{
		ElementAddr: 0x0005,
		CompanyID:   wire.CompanyIDEspressif,
		ModelID:     mesh.ModelIDSensorServer,
		Opcodes:     []wire.Opcode{wire.OpSensorGet},
	}
}

func request(op wire.Opcode) *Request {
	return &Request{
		Opcode: op,
		Model:  sensorModel(),
		Ctx:    &mesh.MessageContext{NetIdx: 0, AppIdx: 1, Addr: 0x0001, RecvDst: 0x0005, RecvOp: op},
	}
}

func newDispatcher(t *testing.T, store *state.Store) (*Dispatcher, *mocks.MockSender, *log.MemoryLogger) {
	t.Helper()
	sender := mocks.NewMockSender(t)
	telemetry := log.NewMemoryLogger(0)
	d := New(Config{Store: store, Sender: sender, Telemetry: telemetry, NodeID: "test-node"})
	return d, sender, telemetry
}

func TestDispatchSensorGet(t *testing.T) {
	store := state.NewStore("bedroom", uuid.Nil)
	store.UpdateSensorState(12.5, 40, 22)
	d, sender, telemetry := newDispatcher(t, store)

	want := wire.EncodeSensorStatus(store.SensorState())
	req := request(wire.OpSensorGet)
	sender.EXPECT().
		SendModelMessage(req.Model, req.Ctx, wire.OpSensorStatus, want).
		Return(nil).
		Once()

	result, err := d.Dispatch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ResultSent, result)

	out := telemetry.Matching(log.Filter{Direction: ptr(log.DirectionOut)})
	require.Len(t, out, 1)
	assert.Equal(t, wire.OpSensorStatus, out[0].Message.Opcode)
	assert.Equal(t, wire.KindSensorGet, out[0].Message.Kind)
	assert.Equal(t, wire.SensorStatusSize, out[0].Message.PayloadSize)
	require.NotNil(t, out[0].Message.ProcessingTime)
	assert.Equal(t, "bedroom", out[0].Message.Payload.(map[string]any)["device"])
}

func TestDispatchSensorGetPayloadDecodes(t *testing.T) {
	store := state.NewStore("lab", uuid.Nil)
	store.UpdateSensorState(12.5, 40, 22)
	d, sender, _ := newDispatcher(t, store)

	var got state.SensorState
	sender.EXPECT().
		SendModelMessage(mock.Anything, mock.Anything, wire.OpSensorStatus, mock.Anything).
		Run(func(_ *mesh.Model, _ *mesh.MessageContext, _ wire.Opcode, payload []byte) {
			var err error
			got, err = wire.DecodeSensorStatus(payload)
			require.NoError(t, err)
		}).
		Return(nil).
		Once()

	_, err := d.Dispatch(context.Background(), request(wire.OpSensorGet))
	require.NoError(t, err)

	assert.Equal(t, state.SensorState{DeviceName: "lab", Lux: 12.5, Temperature: 22, Humidity: 40}, got)
}

func TestDispatchBeaconGet(t *testing.T) {
	id := uuid.UUID{0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA}
	store := state.NewStore("node", uuid.Nil)
	store.UpdateBeaconState(id, 1, 2, -60)
	d, sender, _ := newDispatcher(t, store)

	var got state.BeaconState
	sender.EXPECT().
		SendModelMessage(mock.Anything, mock.Anything, wire.OpBeaconStatus, mock.Anything).
		Run(func(_ *mesh.Model, _ *mesh.MessageContext, _ wire.Opcode, payload []byte) {
			assert.Len(t, payload, wire.BeaconStatusSize)
			got, _ = wire.DecodeBeaconStatus(payload)
		}).
		Return(nil).
		Once()

	result, err := d.Dispatch(context.Background(), request(wire.OpBeaconGet))
	require.NoError(t, err)
	assert.Equal(t, ResultSent, result)
	assert.Equal(t, state.BeaconState{UUID: id, Major: 1, Minor: 2, RSSI: -60}, got)
}

func TestDispatchUnhandledSendsNothing(t *testing.T) {
	store := state.NewStore("node", uuid.Nil)
	d, sender, telemetry := newDispatcher(t, store)

	tests := []wire.Opcode{
		wire.OpSensorStatus,
		wire.Opcode3(0x3F, wire.CompanyIDEspressif),
		wire.OpModelAppBind,
	}
	for _, op := range tests {
		t.Run(op.String(), func(t *testing.T) {
			result, err := d.Dispatch(context.Background(), request(op))
			require.NoError(t, err)
			assert.Equal(t, ResultUnhandled, result)
		})
	}

	sender.AssertNotCalled(t, "SendModelMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Len(t, telemetry.Matching(log.Filter{Direction: ptr(log.DirectionIn)}), len(tests))
	assert.Empty(t, telemetry.Matching(log.Filter{Direction: ptr(log.DirectionOut)}))
}

func TestDispatchSendFailure(t *testing.T) {
	store := state.NewStore("node", uuid.Nil)
	d, sender, telemetry := newDispatcher(t, store)

	stackErr := errors.New("no route to destination")
	sender.EXPECT().
		SendModelMessage(mock.Anything, mock.Anything, wire.OpSensorStatus, mock.Anything).
		Return(stackErr).
		Once()

	result, err := d.Dispatch(context.Background(), request(wire.OpSensorGet))
	assert.Equal(t, ResultSendFailed, result)

	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, wire.OpSensorStatus, sendErr.Opcode)
	assert.ErrorIs(t, err, stackErr)

	errs := telemetry.Matching(log.Filter{Category: ptr(log.CategoryError)})
	require.Len(t, errs, 1)
	require.NotNil(t, errs[0].Error.Opcode)
	assert.Equal(t, wire.OpSensorStatus, *errs[0].Error.Opcode)
	assert.Empty(t, telemetry.Matching(log.Filter{Direction: ptr(log.DirectionOut)}))
}

func TestHandleModelOperationAbsorbsSendFailure(t *testing.T) {
	store := state.NewStore("node", uuid.Nil)
	d, sender, telemetry := newDispatcher(t, store)

	sender.EXPECT().
		SendModelMessage(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("tx queue full")).
		Once()

	req := request(wire.OpBeaconGet)
	assert.NotPanics(t, func() {
		d.HandleModelOperation(mesh.ModelOperationEvent{Opcode: req.Opcode, Model: req.Model, Ctx: req.Ctx})
	})

	assert.Len(t, telemetry.Matching(log.Filter{Category: ptr(log.CategoryError)}), 1)
}

func TestDispatchInvalidRequest(t *testing.T) {
	d, _, _ := newDispatcher(t, state.NewStore("node", uuid.Nil))

	_, err := d.Dispatch(context.Background(), &Request{Opcode: wire.OpSensorGet})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = d.Dispatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestDispatchCanceledContext(t *testing.T) {
	d, sender, _ := newDispatcher(t, state.NewStore("node", uuid.Nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Dispatch(ctx, request(wire.OpSensorGet))
	assert.ErrorIs(t, err, context.Canceled)
	sender.AssertNotCalled(t, "SendModelMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterCustomHandler(t *testing.T) {
	d, sender, _ := newDispatcher(t, state.NewStore("node", uuid.Nil))
	custom := wire.Opcode3(0x10, wire.CompanyIDEspressif)
	reply := wire.Opcode3(0x11, wire.CompanyIDEspressif)

	assert.False(t, d.Handles(custom))
	d.Register(custom, func(req *Request) (*Response, error) {
		return &Response{Opcode: reply, Payload: req.Payload}, nil
	})
	assert.True(t, d.Handles(custom))

	sender.EXPECT().SendModelMessage(mock.Anything, mock.Anything, reply, []byte{7}).Return(nil).Once()

	req := request(custom)
	req.Payload = []byte{7}
	result, err := d.Dispatch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ResultSent, result)

	d.Register(custom, nil)
	assert.False(t, d.Handles(custom))
}

func TestHandlerFailure(t *testing.T) {
	d, sender, telemetry := newDispatcher(t, state.NewStore("node", uuid.Nil))
	boom := errors.New("sensor offline")
	d.Register(wire.OpSensorGet, func(*Request) (*Response, error) { return nil, boom })

	result, err := d.Dispatch(context.Background(), request(wire.OpSensorGet))
	assert.Equal(t, ResultHandlerFailed, result)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, telemetry.Matching(log.Filter{Category: ptr(log.CategoryError)}), 1)
	sender.AssertNotCalled(t, "SendModelMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "SENT", ResultSent.String())
	assert.Equal(t, "UNHANDLED", ResultUnhandled.String())
	assert.Equal(t, "SEND_FAILED", ResultSendFailed.String())
	assert.Equal(t, "RESULT(99)", Result(99).String())
}

func ptr[T any](v T) *T { return &v }
