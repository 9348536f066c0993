package mesh

import (
	"errors"
	"fmt"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// Stack errors.
var (
	ErrNotInitialized = errors.New("mesh stack not initialized")
	ErrNotProvisioned = errors.New("node not provisioned")
	ErrClosed         = errors.New("mesh stack closed")
)

// StackError wraps a non-zero status code returned by the stack.
type StackError struct {
	Op   string
	Code int
}

func (e *StackError) Error() string {
	return fmt.Sprintf("mesh: %s failed with code %d", e.Op, e.Code)
}

// Callback types registered with the stack.
type (
	ProvisioningCallback func(ProvisioningEvent)
	ConfigServerCallback func(ConfigServerEvent)
	ModelCallback        func(ModelOperationEvent)
)

// Sender sends an access message from a local model.
type Sender interface {
	SendModelMessage(model *Model, ctx *MessageContext, op wire.Opcode, payload []byte) error
}

// Stack is the subset of the mesh stack API the node uses.
//
// Callbacks are invoked from a single stack goroutine, one at a time.
type Stack interface {
	Sender

	RegisterProvisioningCallback(cb ProvisioningCallback) error
	RegisterConfigServerCallback(cb ConfigServerCallback) error
	RegisterModelCallback(cb ModelCallback) error

	Init(prov *ProvisionInfo, comp *Composition) error
	EnableProvisioning(bearers Bearer) error
	SetUnprovisionedDeviceName(name string) error
}
