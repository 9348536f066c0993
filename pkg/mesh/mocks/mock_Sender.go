// Written by hand in the layout mockery produces with with-expecter: true.
// Running mockery with .mockery.yaml replaces this file.

package mocks

import (
	mesh "github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	mock "github.com/stretchr/testify/mock"

	wire "github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// MockSender is an autogenerated mock type for the Sender type
type MockSender struct {
	mock.Mock
}

type MockSender_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSender) EXPECT() *MockSender_Expecter {
	return &MockSender_Expecter{mock: &_m.Mock}
}

// SendModelMessage provides a mock function with given fields: model, ctx, op, payload
func (_m *MockSender) SendModelMessage(model *mesh.Model, ctx *mesh.MessageContext, op wire.Opcode, payload []byte) error {
	ret := _m.Called(model, ctx, op, payload)

	if len(ret) == 0 {
		panic("no return value specified for SendModelMessage")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(*mesh.Model, *mesh.MessageContext, wire.Opcode, []byte) error); ok {
		r0 = rf(model, ctx, op, payload)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSender_SendModelMessage_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SendModelMessage'
type MockSender_SendModelMessage_Call struct {
	*mock.Call
}

// SendModelMessage is a helper method to define mock.On call
//   - model *mesh.Model
//   - ctx *mesh.MessageContext
//   - op wire.Opcode
//   - payload []byte
func (_e *MockSender_Expecter) SendModelMessage(model interface{}, ctx interface{}, op interface{}, payload interface{}) *MockSender_SendModelMessage_Call {
	return &MockSender_SendModelMessage_Call{Call: _e.mock.On("SendModelMessage", model, ctx, op, payload)}
}

func (_c *MockSender_SendModelMessage_Call) Run(run func(model *mesh.Model, ctx *mesh.MessageContext, op wire.Opcode, payload []byte)) *MockSender_SendModelMessage_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(*mesh.Model), args[1].(*mesh.MessageContext), args[2].(wire.Opcode), args[3].([]byte))
	})
	return _c
}

func (_c *MockSender_SendModelMessage_Call) Return(_a0 error) *MockSender_SendModelMessage_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSender_SendModelMessage_Call) RunAndReturn(run func(*mesh.Model, *mesh.MessageContext, wire.Opcode, []byte) error) *MockSender_SendModelMessage_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockSender creates a new instance of MockSender. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSender {
	mock := &MockSender{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
