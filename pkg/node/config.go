package node

import (
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/google/uuid"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/state"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/version"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid node configuration")
)

// Config configures a Node.
type Config struct {
	// DeviceName is reported in sensor status messages and advertised while
	// unprovisioned. At most state.MaxDeviceNameLen bytes.
	DeviceName string

	// Address is the Bluetooth device address the device UUID is built from.
	// Nil leaves the address bytes zero.
	Address net.HardwareAddr

	// UUIDPrefix fills the first two octets of the device UUID.
	UUIDPrefix [2]byte

	// BeaconUUID, BeaconMajor and BeaconMinor seed the beacon identity.
	BeaconUUID  uuid.UUID
	BeaconMajor uint16
	BeaconMinor uint16

	// ProductID is reported in the composition data.
	ProductID uint16

	// FirmwareVersion is a "major.minor" string; it becomes the composition
	// VersionID.
	FirmwareVersion string

	// Bearers to enable for provisioning.
	Bearers mesh.Bearer

	// StatePath is the node state file. Empty disables persistence.
	StatePath string

	// NodeID tags telemetry. Empty uses the device UUID.
	NodeID string

	// Logger receives operational logs. Nil disables logging.
	Logger *slog.Logger

	// Telemetry receives structured events. Nil disables telemetry.
	Telemetry log.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DeviceName:      "mesh-node",
		UUIDPrefix:      mesh.DefaultUUIDPrefix,
		ProductID:       0x0001,
		FirmwareVersion: version.Current,
		Bearers:         mesh.BearerADV,
	}
}

// Validate checks if the node config is valid.
func (c *Config) Validate() error {
	if c.DeviceName == "" {
		return fmt.Errorf("%w: device name is empty", ErrInvalidConfig)
	}
	if len(c.DeviceName) > state.MaxDeviceNameLen {
		return fmt.Errorf("%w: device name %q longer than %d bytes", ErrInvalidConfig, c.DeviceName, state.MaxDeviceNameLen)
	}
	if _, err := version.Parse(c.FirmwareVersion); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Bearers == 0 || c.Bearers&^(mesh.BearerADV|mesh.BearerGATT) != 0 {
		return fmt.Errorf("%w: unsupported bearers %s", ErrInvalidConfig, c.Bearers)
	}
	if c.Address != nil && len(c.Address) != 6 {
		return fmt.Errorf("%w: device address must be 6 octets", ErrInvalidConfig)
	}
	return nil
}
