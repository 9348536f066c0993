// Command mesh-node runs the Bluetooth mesh sensor node.
//
// The node serves the vendor sensor and iBeacon models over a mesh stack.
// This build runs on the in-process simulated stack, with a synthetic
// sensor driver and an optional simulated provisioner, which makes it
// usable for development without radio hardware.
//
// Usage:
//
//	mesh-node [flags]
//
// Flags:
//
//	-config string        YAML configuration file
//	-name string          Device name reported in sensor status (max 9 bytes)
//	-addr string          Bluetooth device address used for the device UUID
//	-beacon-uuid string   iBeacon proximity UUID
//	-bearers string       Provisioning bearers: adv, gatt or adv,gatt
//	-state string         Node state file (network info, beacon identity)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  File path for telemetry event logging (CBOR format)
//	-simulate             Run the synthetic sensor driver (default true)
//	-provision uint       Provision at startup with this unicast address
//	-interactive          Run the interactive shell
//
// Examples:
//
//	# Start with defaults, provision at address 0x0005
//	mesh-node -provision 5
//
//	# Use a config file and capture telemetry
//	mesh-node -config /etc/mesh-node.yaml -protocol-log node.mlog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/cmd/mesh-node/interactive"
	meshlog "github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh/sim"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/node"
)

var (
	config = defaultConfig()

	provisionAddr uint // Temp var for flag parsing
	bearerFlag    string
)

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "YAML configuration file")
	flag.StringVar(&config.DeviceName, "name", config.DeviceName, "Device name reported in sensor status (max 9 bytes)")
	flag.StringVar(&config.Address, "addr", "", "Bluetooth device address used for the device UUID")
	flag.StringVar(&config.Beacon.UUID, "beacon-uuid", "", "iBeacon proximity UUID")
	flag.StringVar(&bearerFlag, "bearers", "adv", "Provisioning bearers: adv, gatt or adv,gatt")
	flag.StringVar(&config.StatePath, "state", "", "Node state file (network info, beacon identity)")
	flag.StringVar(&config.NodeID, "node-id", "", "Telemetry node ID (defaults to the device UUID)")
	flag.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level: debug, info, warn, error")
	flag.StringVar(&config.ProtocolLog, "protocol-log", "", "File path for telemetry event logging (CBOR format)")
	flag.BoolVar(&config.Simulation.Enabled, "simulate", config.Simulation.Enabled, "Run the synthetic sensor driver")
	flag.UintVar(&provisionAddr, "provision", 0, "Provision at startup with this unicast address")
	flag.BoolVar(&config.Interactive, "interactive", false, "Run the interactive shell")
}

func main() {
	flag.Parse()

	if err := applyFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags loads the config file, then re-applies explicitly set flags
// so they win over file values.
func applyFlags() error {
	if config.ConfigFile == "" {
		config.Bearers = []string{bearerFlag}
		config.Simulation.ProvisionAddr = uint16(provisionAddr)
		return nil
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	flagged := config
	if err := loadConfigFile(config.ConfigFile, &config); err != nil {
		return err
	}

	if set["name"] {
		config.DeviceName = flagged.DeviceName
	}
	if set["addr"] {
		config.Address = flagged.Address
	}
	if set["beacon-uuid"] {
		config.Beacon.UUID = flagged.Beacon.UUID
	}
	if set["bearers"] || len(config.Bearers) == 0 {
		config.Bearers = []string{bearerFlag}
	}
	if set["state"] {
		config.StatePath = flagged.StatePath
	}
	if set["node-id"] {
		config.NodeID = flagged.NodeID
	}
	if set["log-level"] {
		config.LogLevel = flagged.LogLevel
	}
	if set["protocol-log"] {
		config.ProtocolLog = flagged.ProtocolLog
	}
	if set["simulate"] {
		config.Simulation.Enabled = flagged.Simulation.Enabled
	}
	if set["provision"] {
		config.Simulation.ProvisionAddr = uint16(provisionAddr)
	}
	if set["interactive"] {
		config.Interactive = flagged.Interactive
	}
	return nil
}

func run() error {
	level, err := parseLevel(config.LogLevel)
	if err != nil {
		return err
	}

	nodeCfg, err := config.nodeConfig()
	if err != nil {
		return err
	}

	var shell *interactive.Shell
	var out io.Writer = os.Stderr
	if config.Interactive {
		shell, err = interactive.NewShell()
		if err != nil {
			return err
		}
		out = shell.Stdout()
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	// Telemetry: console at debug level, optional CBOR file, history for the shell.
	history := meshlog.NewMemoryLogger(500)
	var fileLogger *meshlog.FileLogger
	if config.ProtocolLog != "" {
		fileLogger, err = meshlog.NewFileLogger(config.ProtocolLog)
		if err != nil {
			return fmt.Errorf("failed to create protocol logger: %w", err)
		}
		defer fileLogger.Close()
		logger.Info("protocol logging enabled", "path", config.ProtocolLog)
	}
	loggers := []meshlog.Logger{meshlog.NewSlogAdapter(logger.With("component", "telemetry")), history}
	// Only add the file logger when non-nil to avoid a typed-nil interface.
	if fileLogger != nil {
		loggers = append(loggers, fileLogger)
	}
	nodeCfg.Telemetry = meshlog.NewMultiLogger(loggers...)
	nodeCfg.Logger = logger

	stack := sim.New(sim.Config{Logger: logger.With("component", "sim")})
	defer stack.Close()

	n, err := node.NewNode(stack, nodeCfg)
	if err != nil {
		return fmt.Errorf("failed to create node: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := n.Start(ctx); err != nil {
		return fmt.Errorf("failed to start node: %w", err)
	}
	defer n.Stop()

	logger.Info("mesh node running",
		"uuid", n.DeviceUUID(),
		"state", n.Controller().State(),
		"bearers", nodeCfg.Bearers,
	)

	simulator := newSimulator(n, stack, logger.With("component", "driver"), config.Simulation)
	if config.Simulation.ProvisionAddr != 0 {
		if err := simulator.Provision(config.Simulation.ProvisionAddr); err != nil {
			logger.Warn("simulated provisioning failed", "error", err)
		}
	}
	if config.Simulation.Enabled {
		simulator.Start(ctx)
		defer simulator.Stop()
	}

	if shell != nil {
		shell.Attach(interactive.Target{
			Node:      n,
			Stack:     stack,
			History:   history,
			Simulator: simulator,
		})
		shell.Run(ctx, cancel)
		return nil
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig)
	case <-ctx.Done():
	}
	return nil
}
