package wire

import "fmt"

// Opcode is a mesh access-layer opcode.
type Opcode uint32

// CompanyIDEspressif is the Bluetooth SIG company identifier the vendor
// models are registered under.
const CompanyIDEspressif uint16 = 0x02E5

// Opcode3 builds a 3-octet vendor opcode.
func Opcode3(op uint8, companyID uint16) Opcode {
	return Opcode(0xC00000 | uint32(op&0x3F)<<16 | uint32(companyID))
}

// Vendor model opcodes.
var (
	OpSensorGet    = Opcode3(0x00, CompanyIDEspressif)
	OpSensorStatus = Opcode3(0x01, CompanyIDEspressif)
	OpBeaconGet    = Opcode3(0x02, CompanyIDEspressif)
	OpBeaconStatus = Opcode3(0x03, CompanyIDEspressif)
)

// Configuration server opcodes reported by the stack.
const (
	OpAppKeyAdd    Opcode = 0x00
	OpModelAppBind Opcode = 0x803D
)

// Size returns the encoded opcode length in octets.
func (o Opcode) Size() int {
	switch {
	case o < 0x100:
		return 1
	case o < 0x10000:
		return 2
	default:
		return 3
	}
}

// IsVendor returns true for 3-octet vendor opcodes.
func (o Opcode) IsVendor() bool {
	return o.Size() == 3 && o&0xC00000 == 0xC00000
}

// CompanyID returns the company identifier of a vendor opcode, 0 otherwise.
func (o Opcode) CompanyID() uint16 {
	if !o.IsVendor() {
		return 0
	}
	return uint16(o & 0xFFFF)
}

// String returns the opcode in hex, padded to its encoded size.
func (o Opcode) String() string {
	switch o.Size() {
	case 1:
		return fmt.Sprintf("0x%02X", uint32(o))
	case 2:
		return fmt.Sprintf("0x%04X", uint32(o))
	default:
		return fmt.Sprintf("0x%06X", uint32(o))
	}
}

// Kind classifies an inbound opcode.
type Kind uint8

const (
	// KindUnhandled is any opcode the node does not answer.
	KindUnhandled Kind = iota

	// KindSensorGet requests the current sensor reading.
	KindSensorGet

	// KindBeaconGet requests the iBeacon identity.
	KindBeaconGet
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSensorGet:
		return "SENSOR_GET"
	case KindBeaconGet:
		return "BEACON_GET"
	default:
		return "UNHANDLED"
	}
}

// Classify maps an opcode to the get request it represents.
// Unknown opcodes classify as KindUnhandled.
func Classify(op Opcode) Kind {
	switch op {
	case OpSensorGet:
		return KindSensorGet
	case OpBeaconGet:
		return KindBeaconGet
	default:
		return KindUnhandled
	}
}

// StatusOpcode returns the reply opcode for a get kind.
// The second result is false for KindUnhandled.
func StatusOpcode(k Kind) (Opcode, bool) {
	switch k {
	case KindSensorGet:
		return OpSensorStatus, true
	case KindBeaconGet:
		return OpBeaconStatus, true
	default:
		return 0, false
	}
}
