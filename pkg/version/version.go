// Package version provides firmware version parsing and the composition
// data version identifier derived from it.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the firmware version of this build.
const Current = "1.0"

// Firmware represents a parsed "major.minor" firmware version.
type Firmware struct {
	Major uint8
	Minor uint8
}

// Parse parses a "major.minor" version string.
func Parse(s string) (Firmware, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return Firmware{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || parts[0] == "" {
		return Firmware{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || parts[1] == "" {
		return Firmware{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return Firmware{Major: uint8(major), Minor: uint8(minor)}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Firmware {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "major.minor".
func (v Firmware) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// VersionID returns the composition data VID: major in the high octet,
// minor in the low octet.
func (v Firmware) VersionID() uint16 {
	return uint16(v.Major)<<8 | uint16(v.Minor)
}

// FromVersionID is the inverse of VersionID.
func FromVersionID(vid uint16) Firmware {
	return Firmware{Major: uint8(vid >> 8), Minor: uint8(vid)}
}

// Compatible returns true if the other version has the same major version.
func (v Firmware) Compatible(other Firmware) bool {
	return v.Major == other.Major
}
