package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/node"
)

// Config holds the command configuration. Values come from the defaults,
// then the YAML file, then explicitly set flags.
type Config struct {
	ConfigFile string `yaml:"-"`

	DeviceName      string       `yaml:"device_name"`
	Address         string       `yaml:"address"`
	UUIDPrefix      string       `yaml:"uuid_prefix"`
	Beacon          BeaconConfig `yaml:"beacon"`
	ProductID       uint16       `yaml:"product_id"`
	FirmwareVersion string       `yaml:"firmware_version"`
	Bearers         []string     `yaml:"bearers"`
	StatePath       string       `yaml:"state_path"`
	NodeID          string       `yaml:"node_id"`

	LogLevel    string `yaml:"log_level"`
	ProtocolLog string `yaml:"protocol_log"`
	Interactive bool   `yaml:"interactive"`

	Simulation SimulationConfig `yaml:"simulation"`
}

// BeaconConfig seeds the iBeacon identity.
type BeaconConfig struct {
	UUID  string `yaml:"uuid"`
	Major uint16 `yaml:"major"`
	Minor uint16 `yaml:"minor"`
}

// SimulationConfig controls the synthetic sensor driver and provisioner.
type SimulationConfig struct {
	Enabled bool `yaml:"enabled"`

	// Interval between synthetic sensor readings.
	Interval time.Duration `yaml:"interval"`

	// ProvisionAddr, when non-zero, provisions the node at startup with
	// this unicast address and binds both vendor models.
	ProvisionAddr uint16 `yaml:"provision_addr"`

	// PollInterval, when non-zero, makes a simulated client send
	// SensorGet and BeaconGet at this interval.
	PollInterval time.Duration `yaml:"poll_interval"`
}

func defaultConfig() Config {
	d := node.DefaultConfig()
	return Config{
		DeviceName:      d.DeviceName,
		UUIDPrefix:      hex.EncodeToString(d.UUIDPrefix[:]),
		ProductID:       d.ProductID,
		FirmwareVersion: d.FirmwareVersion,
		Bearers:         []string{"adv"},
		LogLevel:        "info",
		Simulation: SimulationConfig{
			Enabled:  true,
			Interval: 5 * time.Second,
		},
	}
}

// loadConfigFile overlays the YAML file at path onto cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// parseBearers converts names like "adv", "gatt", "pb-adv" to a bitmask.
func parseBearers(names []string) (mesh.Bearer, error) {
	var b mesh.Bearer
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "adv", "pb-adv":
				b |= mesh.BearerADV
			case "gatt", "pb-gatt":
				b |= mesh.BearerGATT
			case "":
			default:
				return 0, fmt.Errorf("unknown bearer %q", name)
			}
		}
	}
	if b == 0 {
		return 0, fmt.Errorf("no bearer configured")
	}
	return b, nil
}

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

// nodeConfig translates the command config into a node.Config.
func (c *Config) nodeConfig() (node.Config, error) {
	nc := node.DefaultConfig()
	nc.DeviceName = c.DeviceName
	nc.ProductID = c.ProductID
	nc.FirmwareVersion = c.FirmwareVersion
	nc.StatePath = c.StatePath
	nc.NodeID = c.NodeID
	nc.BeaconMajor = c.Beacon.Major
	nc.BeaconMinor = c.Beacon.Minor

	if c.Address != "" {
		addr, err := net.ParseMAC(c.Address)
		if err != nil {
			return nc, fmt.Errorf("invalid device address: %w", err)
		}
		nc.Address = addr
	}

	if c.UUIDPrefix != "" {
		prefix, err := hex.DecodeString(c.UUIDPrefix)
		if err != nil || len(prefix) != 2 {
			return nc, fmt.Errorf("uuid prefix must be 2 hex octets, got %q", c.UUIDPrefix)
		}
		copy(nc.UUIDPrefix[:], prefix)
	}

	if c.Beacon.UUID != "" {
		id, err := uuid.Parse(c.Beacon.UUID)
		if err != nil {
			return nc, fmt.Errorf("invalid beacon uuid: %w", err)
		}
		nc.BeaconUUID = id
	}

	bearers, err := parseBearers(c.Bearers)
	if err != nil {
		return nc, err
	}
	nc.Bearers = bearers

	if err := nc.Validate(); err != nil {
		return nc, err
	}
	return nc, nil
}
