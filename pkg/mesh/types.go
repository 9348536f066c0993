package mesh

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// Bearer is a provisioning bearer bitmask.
type Bearer uint8

const (
	// BearerADV provisions over advertising bearers (PB-ADV).
	BearerADV Bearer = 1 << 0

	// BearerGATT provisions over a GATT connection (PB-GATT).
	BearerGATT Bearer = 1 << 1
)

// String returns the bearer names joined by "|".
func (b Bearer) String() string {
	var names []string
	if b&BearerADV != 0 {
		names = append(names, "PB-ADV")
	}
	if b&BearerGATT != 0 {
		names = append(names, "PB-GATT")
	}
	if len(names) == 0 {
		return fmt.Sprintf("BEARER(%d)", uint8(b))
	}
	return strings.Join(names, "|")
}

// Vendor model identifiers.
const (
	ModelIDSensorServer uint16 = 0x1414
	ModelIDBeaconServer uint16 = 0x1416
)

// MessageContext carries the addressing of an inbound message. Responses are
// sent back through the same context.
type MessageContext struct {
	NetIdx  uint16
	AppIdx  uint16
	Addr    uint16 // source of the inbound message, destination of the response
	RecvDst uint16
	RecvTTL uint8
	RecvOp  wire.Opcode
}

// Model identifies a model instance on an element.
type Model struct {
	ElementAddr uint16
	CompanyID   uint16
	ModelID     uint16

	// Opcodes the model accepts.
	Opcodes []wire.Opcode
}

// IsVendor reports whether the model is a vendor model.
func (m *Model) IsVendor() bool {
	return m.CompanyID != 0
}

// Accepts reports whether op is in the model's opcode list.
func (m *Model) Accepts(op wire.Opcode) bool {
	for _, o := range m.Opcodes {
		if o == op {
			return true
		}
	}
	return false
}

// String returns the model as "cid:mid@addr".
func (m *Model) String() string {
	return fmt.Sprintf("%04x:%04x@%04x", m.CompanyID, m.ModelID, m.ElementAddr)
}

// Element is one addressable element of the node.
type Element struct {
	Location     uint16
	SIGModels    []uint16
	VendorModels []*Model
}

// Composition is the composition data page 0 the node registers with the
// stack.
type Composition struct {
	CompanyID uint16
	ProductID uint16
	VersionID uint16
	Elements  []Element
}

// FindModel returns the vendor model with the given ids, or nil.
func (c *Composition) FindModel(companyID, modelID uint16) *Model {
	for i := range c.Elements {
		for _, m := range c.Elements[i].VendorModels {
			if m.CompanyID == companyID && m.ModelID == modelID {
				return m
			}
		}
	}
	return nil
}

// Models returns every vendor model in element order.
func (c *Composition) Models() []*Model {
	var out []*Model
	for i := range c.Elements {
		out = append(out, c.Elements[i].VendorModels...)
	}
	return out
}

// ProvisionInfo describes the unprovisioned device to the stack.
type ProvisionInfo struct {
	DeviceUUID uuid.UUID

	// Name is advertised while unprovisioned. Empty keeps the stack default.
	Name string
}
