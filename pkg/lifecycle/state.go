package lifecycle

import (
	"errors"
	"fmt"
	"time"
)

// Lifecycle errors.
var (
	ErrInitFailed         = errors.New("controller initialization previously failed")
	ErrAlreadyInitialized = errors.New("controller already initialized")
	ErrNotInitialized     = errors.New("controller not initialized")
)

// State is the controller state.
type State uint8

const (
	StateUninitialized State = iota
	StateStackRegistered
	StateProvisioningEnabled
	StateLinkOpen
	StateProvisioned
	StateReset
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateStackRegistered:
		return "STACK_REGISTERED"
	case StateProvisioningEnabled:
		return "PROVISIONING_ENABLED"
	case StateLinkOpen:
		return "LINK_OPEN"
	case StateProvisioned:
		return "PROVISIONED"
	case StateReset:
		return "RESET"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ProvisioningState is the node's membership in a mesh network as reported
// by the stack.
type ProvisioningState uint8

const (
	Unprovisioned ProvisioningState = iota
	ProvisioningLinkOpen
	Provisioned
	ProvisioningReset
)

// String returns a human-readable provisioning state name.
func (p ProvisioningState) String() string {
	switch p {
	case Unprovisioned:
		return "UNPROVISIONED"
	case ProvisioningLinkOpen:
		return "LINK_OPEN"
	case Provisioned:
		return "PROVISIONED"
	case ProvisioningReset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}

// Stage identifies the Initialize step that failed.
type Stage uint8

const (
	StageRegister Stage = iota + 1
	StageStackInit
	StageEnableProvisioning
)

func (s Stage) String() string {
	switch s {
	case StageRegister:
		return "register callbacks"
	case StageStackInit:
		return "initialize stack"
	case StageEnableProvisioning:
		return "enable provisioning"
	default:
		return "unknown stage"
	}
}

// InitError reports which Initialize step failed.
type InitError struct {
	Stage Stage
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("lifecycle: %s: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// NetworkInfo holds the parameters received at provisioning complete.
type NetworkInfo struct {
	NetIdx        uint16
	Addr          uint16
	Flags         uint8
	IVIndex       uint32
	ProvisionedAt time.Time
}

// NetworkStore persists NetworkInfo across restarts.
type NetworkStore interface {
	SaveNetwork(info NetworkInfo) error
	LoadNetwork() (*NetworkInfo, error)
	ClearNetwork() error
}
