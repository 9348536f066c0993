package mesh

import (
	"net"

	"github.com/google/uuid"
)

// DefaultUUIDPrefix is the fixed prefix of device UUIDs.
var DefaultUUIDPrefix = [2]byte{0xdd, 0xdd}

// DeviceUUIDFromAddress builds the device UUID advertised while
// unprovisioned: bytes 0-1 hold prefix, bytes 2-7 the Bluetooth device
// address, the rest are zero. Addresses longer than six octets are cut.
func DeviceUUIDFromAddress(prefix [2]byte, addr net.HardwareAddr) uuid.UUID {
	var id uuid.UUID
	id[0] = prefix[0]
	id[1] = prefix[1]
	n := len(addr)
	if n > 6 {
		n = 6
	}
	copy(id[2:2+n], addr[:n])
	return id
}
