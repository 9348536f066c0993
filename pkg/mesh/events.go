package mesh

import (
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// ProvisioningEventType identifies a provisioning callback event.
type ProvisioningEventType uint8

const (
	EventRegisterComplete ProvisioningEventType = iota + 1
	EventProvisioningEnableComplete
	EventLinkOpen
	EventLinkClose
	EventProvisioningComplete
	EventReset
	EventUnprovisionedNameSetComplete
)

func (t ProvisioningEventType) String() string {
	switch t {
	case EventRegisterComplete:
		return "REGISTER_COMPLETE"
	case EventProvisioningEnableComplete:
		return "PROV_ENABLE_COMPLETE"
	case EventLinkOpen:
		return "LINK_OPEN"
	case EventLinkClose:
		return "LINK_CLOSE"
	case EventProvisioningComplete:
		return "PROV_COMPLETE"
	case EventReset:
		return "RESET"
	case EventUnprovisionedNameSetComplete:
		return "SET_UNPROV_DEV_NAME_COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// ProvisioningEvent is delivered by the stack for every provisioning
// transition. Only the fields relevant to Type are set.
type ProvisioningEvent struct {
	Type ProvisioningEventType

	// ErrCode is set on the *Complete events. Zero means success.
	ErrCode int

	// Bearer is set on link open/close.
	Bearer Bearer

	// Network parameters, set on provisioning complete.
	NetIdx  uint16
	Addr    uint16
	Flags   uint8
	IVIndex uint32
}

// AppKeyAdd is the state change reported for a Config AppKey Add.
type AppKeyAdd struct {
	NetIdx uint16
	AppIdx uint16
	AppKey [16]byte
}

// ModelAppBind is the state change reported for a Config Model App Bind.
type ModelAppBind struct {
	ElementAddr uint16
	AppIdx      uint16
	CompanyID   uint16
	ModelID     uint16
}

// ConfigServerEvent is a configuration server state change. Op is the
// received configuration opcode; the matching payload field is set.
type ConfigServerEvent struct {
	Op  wire.Opcode
	Ctx MessageContext

	AppKeyAdd    *AppKeyAdd
	ModelAppBind *ModelAppBind
}

// ModelOperationEvent is an inbound access message for one of the node's
// models.
type ModelOperationEvent struct {
	Opcode  wire.Opcode
	Model   *Model
	Ctx     *MessageContext
	Payload []byte
}
