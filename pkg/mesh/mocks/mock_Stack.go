// Written by hand in the layout mockery produces with with-expecter: true.
// Running mockery with .mockery.yaml replaces this file.

package mocks

import (
	mesh "github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	mock "github.com/stretchr/testify/mock"

	wire "github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// MockStack is an autogenerated mock type for the Stack type
type MockStack struct {
	mock.Mock
}

type MockStack_Expecter struct {
	mock *mock.Mock
}

func (_m *MockStack) EXPECT() *MockStack_Expecter {
	return &MockStack_Expecter{mock: &_m.Mock}
}

// EnableProvisioning provides a mock function with given fields: bearers
func (_m *MockStack) EnableProvisioning(bearers mesh.Bearer) error {
	ret := _m.Called(bearers)

	if len(ret) == 0 {
		panic("no return value specified for EnableProvisioning")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(mesh.Bearer) error); ok {
		r0 = rf(bearers)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockStack_EnableProvisioning_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'EnableProvisioning'
type MockStack_EnableProvisioning_Call struct {
	*mock.Call
}

// EnableProvisioning is a helper method to define mock.On call
//   - bearers mesh.Bearer
func (_e *MockStack_Expecter) EnableProvisioning(bearers interface{}) *MockStack_EnableProvisioning_Call {
	return &MockStack_EnableProvisioning_Call{Call: _e.mock.On("EnableProvisioning", bearers)}
}

func (_c *MockStack_EnableProvisioning_Call) Run(run func(bearers mesh.Bearer)) *MockStack_EnableProvisioning_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(mesh.Bearer))
	})
	return _c
}

func (_c *MockStack_EnableProvisioning_Call) Return(_a0 error) *MockStack_EnableProvisioning_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockStack_EnableProvisioning_Call) RunAndReturn(run func(mesh.Bearer) error) *MockStack_EnableProvisioning_Call {
	_c.Call.Return(run)
	return _c
}

// Init provides a mock function with given fields: prov, comp
func (_m *MockStack) Init(prov *mesh.ProvisionInfo, comp *mesh.Composition) error {
	ret := _m.Called(prov, comp)

	if len(ret) == 0 {
		panic("no return value specified for Init")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(*mesh.ProvisionInfo, *mesh.Composition) error); ok {
		r0 = rf(prov, comp)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockStack_Init_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Init'
type MockStack_Init_Call struct {
	*mock.Call
}

// Init is a helper method to define mock.On call
//   - prov *mesh.ProvisionInfo
//   - comp *mesh.Composition
func (_e *MockStack_Expecter) Init(prov interface{}, comp interface{}) *MockStack_Init_Call {
	return &MockStack_Init_Call{Call: _e.mock.On("Init", prov, comp)}
}

func (_c *MockStack_Init_Call) Run(run func(prov *mesh.ProvisionInfo, comp *mesh.Composition)) *MockStack_Init_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(*mesh.ProvisionInfo), args[1].(*mesh.Composition))
	})
	return _c
}

func (_c *MockStack_Init_Call) Return(_a0 error) *MockStack_Init_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockStack_Init_Call) RunAndReturn(run func(*mesh.ProvisionInfo, *mesh.Composition) error) *MockStack_Init_Call {
	_c.Call.Return(run)
	return _c
}

// RegisterConfigServerCallback provides a mock function with given fields: cb
func (_m *MockStack) RegisterConfigServerCallback(cb mesh.ConfigServerCallback) error {
	ret := _m.Called(cb)

	if len(ret) == 0 {
		panic("no return value specified for RegisterConfigServerCallback")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(mesh.ConfigServerCallback) error); ok {
		r0 = rf(cb)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockStack_RegisterConfigServerCallback_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RegisterConfigServerCallback'
type MockStack_RegisterConfigServerCallback_Call struct {
	*mock.Call
}

// RegisterConfigServerCallback is a helper method to define mock.On call
//   - cb mesh.ConfigServerCallback
func (_e *MockStack_Expecter) RegisterConfigServerCallback(cb interface{}) *MockStack_RegisterConfigServerCallback_Call {
	return &MockStack_RegisterConfigServerCallback_Call{Call: _e.mock.On("RegisterConfigServerCallback", cb)}
}

func (_c *MockStack_RegisterConfigServerCallback_Call) Run(run func(cb mesh.ConfigServerCallback)) *MockStack_RegisterConfigServerCallback_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(mesh.ConfigServerCallback))
	})
	return _c
}

func (_c *MockStack_RegisterConfigServerCallback_Call) Return(_a0 error) *MockStack_RegisterConfigServerCallback_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockStack_RegisterConfigServerCallback_Call) RunAndReturn(run func(mesh.ConfigServerCallback) error) *MockStack_RegisterConfigServerCallback_Call {
	_c.Call.Return(run)
	return _c
}

// RegisterModelCallback provides a mock function with given fields: cb
func (_m *MockStack) RegisterModelCallback(cb mesh.ModelCallback) error {
	ret := _m.Called(cb)

	if len(ret) == 0 {
		panic("no return value specified for RegisterModelCallback")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(mesh.ModelCallback) error); ok {
		r0 = rf(cb)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockStack_RegisterModelCallback_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RegisterModelCallback'
type MockStack_RegisterModelCallback_Call struct {
	*mock.Call
}

// RegisterModelCallback is a helper method to define mock.On call
//   - cb mesh.ModelCallback
func (_e *MockStack_Expecter) RegisterModelCallback(cb interface{}) *MockStack_RegisterModelCallback_Call {
	return &MockStack_RegisterModelCallback_Call{Call: _e.mock.On("RegisterModelCallback", cb)}
}

func (_c *MockStack_RegisterModelCallback_Call) Run(run func(cb mesh.ModelCallback)) *MockStack_RegisterModelCallback_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(mesh.ModelCallback))
	})
	return _c
}

func (_c *MockStack_RegisterModelCallback_Call) Return(_a0 error) *MockStack_RegisterModelCallback_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockStack_RegisterModelCallback_Call) RunAndReturn(run func(mesh.ModelCallback) error) *MockStack_RegisterModelCallback_Call {
	_c.Call.Return(run)
	return _c
}

// RegisterProvisioningCallback provides a mock function with given fields: cb
func (_m *MockStack) RegisterProvisioningCallback(cb mesh.ProvisioningCallback) error {
	ret := _m.Called(cb)

	if len(ret) == 0 {
		panic("no return value specified for RegisterProvisioningCallback")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(mesh.ProvisioningCallback) error); ok {
		r0 = rf(cb)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockStack_RegisterProvisioningCallback_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RegisterProvisioningCallback'
type MockStack_RegisterProvisioningCallback_Call struct {
	*mock.Call
}

// RegisterProvisioningCallback is a helper method to define mock.On call
//   - cb mesh.ProvisioningCallback
func (_e *MockStack_Expecter) RegisterProvisioningCallback(cb interface{}) *MockStack_RegisterProvisioningCallback_Call {
	return &MockStack_RegisterProvisioningCallback_Call{Call: _e.mock.On("RegisterProvisioningCallback", cb)}
}

func (_c *MockStack_RegisterProvisioningCallback_Call) Run(run func(cb mesh.ProvisioningCallback)) *MockStack_RegisterProvisioningCallback_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(mesh.ProvisioningCallback))
	})
	return _c
}

func (_c *MockStack_RegisterProvisioningCallback_Call) Return(_a0 error) *MockStack_RegisterProvisioningCallback_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockStack_RegisterProvisioningCallback_Call) RunAndReturn(run func(mesh.ProvisioningCallback) error) *MockStack_RegisterProvisioningCallback_Call {
	_c.Call.Return(run)
	return _c
}

// SendModelMessage provides a mock function with given fields: model, ctx, op, payload
func (_m *MockStack) SendModelMessage(model *mesh.Model, ctx *mesh.MessageContext, op wire.Opcode, payload []byte) error {
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

// MockStack_SendModelMessage_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SendModelMessage'
type MockStack_SendModelMessage_Call struct {
	*mock.Call
}

// SendModelMessage is a helper method to define mock.On call
//   - model *mesh.Model
//   - ctx *mesh.MessageContext
//   - op wire.Opcode
//   - payload []byte
func (_e *MockStack_Expecter) SendModelMessage(model interface{}, ctx interface{}, op interface{}, payload interface{}) *MockStack_SendModelMessage_Call {
	return &MockStack_SendModelMessage_Call{Call: _e.mock.On("SendModelMessage", model, ctx, op, payload)}
}

func (_c *MockStack_SendModelMessage_Call) Run(run func(model *mesh.Model, ctx *mesh.MessageContext, op wire.Opcode, payload []byte)) *MockStack_SendModelMessage_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(*mesh.Model), args[1].(*mesh.MessageContext), args[2].(wire.Opcode), args[3].([]byte))
	})
	return _c
}

func (_c *MockStack_SendModelMessage_Call) Return(_a0 error) *MockStack_SendModelMessage_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockStack_SendModelMessage_Call) RunAndReturn(run func(*mesh.Model, *mesh.MessageContext, wire.Opcode, []byte) error) *MockStack_SendModelMessage_Call {
	_c.Call.Return(run)
	return _c
}

// SetUnprovisionedDeviceName provides a mock function with given fields: name
func (_m *MockStack) SetUnprovisionedDeviceName(name string) error {
	ret := _m.Called(name)

	if len(ret) == 0 {
		panic("no return value specified for SetUnprovisionedDeviceName")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(string) error); ok {
		r0 = rf(name)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockStack_SetUnprovisionedDeviceName_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetUnprovisionedDeviceName'
type MockStack_SetUnprovisionedDeviceName_Call struct {
	*mock.Call
}

// SetUnprovisionedDeviceName is a helper method to define mock.On call
//   - name string
func (_e *MockStack_Expecter) SetUnprovisionedDeviceName(name interface{}) *MockStack_SetUnprovisionedDeviceName_Call {
	return &MockStack_SetUnprovisionedDeviceName_Call{Call: _e.mock.On("SetUnprovisionedDeviceName", name)}
}

func (_c *MockStack_SetUnprovisionedDeviceName_Call) Run(run func(name string)) *MockStack_SetUnprovisionedDeviceName_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})
	return _c
}

func (_c *MockStack_SetUnprovisionedDeviceName_Call) Return(_a0 error) *MockStack_SetUnprovisionedDeviceName_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockStack_SetUnprovisionedDeviceName_Call) RunAndReturn(run func(string) error) *MockStack_SetUnprovisionedDeviceName_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockStack creates a new instance of MockStack. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockStack(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStack {
	mock := &MockStack{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
