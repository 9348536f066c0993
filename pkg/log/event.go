package log

import (
	"time"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// Event is a telemetry event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// NodeID is the device UUID of the node that recorded the event.
	NodeID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Address is the node's unicast address (0 until provisioned).
	Address uint16 `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Message      *MessageEvent      `cbor:"10,keyasint,omitempty"`
	StateChange  *StateChangeEvent  `cbor:"11,keyasint,omitempty"`
	Provisioning *ProvisioningEvent `cbor:"12,keyasint,omitempty"`
	Config       *ConfigEvent       `cbor:"13,keyasint,omitempty"`
	Error        *ErrorEventData    `cbor:"14,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message or event.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
	// DirectionLocal indicates an event that did not cross the network.
	DirectionLocal Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	case DirectionLocal:
		return "LOCAL"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerStack is the mesh stack boundary (provisioning, configuration).
	LayerStack Layer = 0
	// LayerModel is the model dispatcher.
	LayerModel Layer = 1
	// LayerStore is the state cache.
	LayerStore Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerStack:
		return "STACK"
	case LayerModel:
		return "MODEL"
	case LayerStore:
		return "STORE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a model message (request or status).
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryConfig indicates a configuration server event.
	CategoryConfig Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryConfig:
		return "CONFIG"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MessageEvent captures a model message handled by the dispatcher.
type MessageEvent struct {
	// Opcode of the message.
	Opcode wire.Opcode `cbor:"1,keyasint"`

	// Kind is the request classification (requests only).
	Kind wire.Kind `cbor:"2,keyasint,omitempty"`

	// Src is the source unicast address.
	Src uint16 `cbor:"3,keyasint,omitempty"`

	// Dst is the destination address.
	Dst uint16 `cbor:"4,keyasint,omitempty"`

	// NetIdx and AppIdx identify the keys the message used.
	NetIdx uint16 `cbor:"5,keyasint,omitempty"`
	AppIdx uint16 `cbor:"6,keyasint,omitempty"`

	// PayloadSize is the access payload length in bytes.
	PayloadSize int `cbor:"7,keyasint,omitempty"`

	// Payload is the decoded payload (CBOR-compatible representation).
	Payload any `cbor:"8,keyasint,omitempty"`

	// ProcessingTime is the duration from request receipt to status send.
	ProcessingTime *time.Duration `cbor:"9,keyasint,omitempty"`
}

// StateChangeEvent captures lifecycle and state cache changes.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityProvisioning indicates a provisioning state change.
	StateEntityProvisioning StateEntity = 0
	// StateEntityStack indicates a stack bring-up stage change.
	StateEntityStack StateEntity = 1
	// StateEntitySensor indicates a sensor reading update.
	StateEntitySensor StateEntity = 2
	// StateEntityBeacon indicates a beacon identity update.
	StateEntityBeacon StateEntity = 3
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityProvisioning:
		return "PROVISIONING"
	case StateEntityStack:
		return "STACK"
	case StateEntitySensor:
		return "SENSOR"
	case StateEntityBeacon:
		return "BEACON"
	default:
		return "UNKNOWN"
	}
}

// ProvisioningEvent captures a provisioning callback from the stack.
type ProvisioningEvent struct {
	// Event is the provisioning event name (e.g. LINK_OPEN).
	Event string `cbor:"1,keyasint"`

	// Bearer is the provisioning bearer name (PB-ADV or PB-GATT).
	Bearer string `cbor:"2,keyasint,omitempty"`

	// ErrCode is the stack result code for completion events.
	ErrCode *int `cbor:"3,keyasint,omitempty"`

	// Network parameters assigned by the provisioner.
	NetIdx  uint16 `cbor:"4,keyasint,omitempty"`
	Addr    uint16 `cbor:"5,keyasint,omitempty"`
	Flags   uint8  `cbor:"6,keyasint,omitempty"`
	IVIndex uint32 `cbor:"7,keyasint,omitempty"`
}

// ConfigEvent captures a configuration server state change.
type ConfigEvent struct {
	// Opcode of the configuration message (AppKey Add, Model App Bind).
	Opcode wire.Opcode `cbor:"1,keyasint"`

	NetIdx uint16 `cbor:"2,keyasint,omitempty"`
	AppIdx uint16 `cbor:"3,keyasint,omitempty"`

	// AppKey is the added application key (AppKey Add only).
	AppKey []byte `cbor:"4,keyasint,omitempty"`

	// Binding target (Model App Bind only).
	ElementAddr uint16 `cbor:"5,keyasint,omitempty"`
	CompanyID   uint16 `cbor:"6,keyasint,omitempty"`
	ModelID     uint16 `cbor:"7,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`

	// Opcode is the message opcode involved, if any.
	Opcode *wire.Opcode `cbor:"5,keyasint,omitempty"`
}
