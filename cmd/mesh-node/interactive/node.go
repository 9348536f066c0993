// Package interactive provides the interactive command-line interface
// for the mesh node.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh/sim"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/node"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/version"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// Simulator is the synthetic driver and client the shell controls.
type Simulator interface {
	Start(ctx context.Context)
	Stop()
	Sample()
	Provision(addr uint16) error
	Get(op wire.Opcode) error
}

// Target is what the shell operates on.
type Target struct {
	Node      *node.Node
	Stack     *sim.Stack
	History   *log.MemoryLogger
	Simulator Simulator
}

// Shell handles interactive mode for mesh-node.
type Shell struct {
	rl  *readline.Instance
	out io.Writer
	Target
}

// NewShell creates the readline instance. Call Attach before Run.
func NewShell() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mesh> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{rl: rl, out: rl.Stdout()}, nil
}

// Attach sets the node the shell operates on.
func (s *Shell) Attach(t Target) {
	s.Target = t
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if s.Execute(ctx, line) {
			cancel()
			return
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "status", "s":
		s.cmdStatus()

	case "sensor":
		s.cmdSensor(args)

	case "beacon":
		s.cmdBeacon(args)

	case "name":
		s.cmdName(args)

	case "provision", "prov":
		s.cmdProvision(args)

	case "get":
		s.cmdGet(args)

	case "sent":
		s.cmdSent()

	case "history", "h":
		s.cmdHistory(args)

	case "reset":
		s.cmdReset()

	case "start", "sim-start":
		s.Simulator.Start(ctx)
		fmt.Fprintln(s.out, "Sensor driver started")

	case "sample":
		s.Simulator.Sample()
		fmt.Fprintln(s.out, s.Node.Store().SensorState())

	case "stop", "sim-stop":
		s.Simulator.Stop()
		fmt.Fprintln(s.out, "Sensor driver stopped")

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Mesh Node Commands:
  State:
    status                        - Show lifecycle and network state
    sensor [lux temp hum]         - Show or set the sensor reading
    beacon [uuid major minor rssi] - Show or set the beacon identity
    name <name>                   - Set the device name (max 9 bytes)

  Provisioner (simulated):
    provision <addr>              - Provision, add an AppKey and bind models
    reset                         - Send a node reset

  Client (simulated):
    get sensor|beacon             - Request a status and print the reply
    sent                          - List messages sent by the node

  Driver:
    start                         - Start the synthetic sensor driver
    stop                          - Stop the synthetic sensor driver
    sample                        - Take one synthetic reading now

  Telemetry:
    history [n]                   - Show the last n telemetry events

  quit                            - Exit`)
}

func (s *Shell) cmdStatus() {
	w := s.out
	ctrl := s.Node.Controller()

	fmt.Fprintf(w, "Device UUID:  %s\n", s.Node.DeviceUUID())
	fmt.Fprintf(w, "Run state:    %s\n", s.Node.RunState())
	fmt.Fprintf(w, "Stack state:  %s\n", ctrl.State())
	fmt.Fprintf(w, "Provisioning: %s\n", ctrl.ProvisioningState())
	if info, ok := ctrl.NetworkInfo(); ok {
		fmt.Fprintf(w, "Network:      net_idx=0x%03x addr=0x%04X iv_index=0x%08x since %s\n",
			info.NetIdx, info.Addr, info.IVIndex, info.ProvisionedAt.Format("15:04:05"))
	}

	snap := s.Node.Store().Snapshot()
	fmt.Fprintf(w, "Sensor:       %s\n", snap.Sensor)
	fmt.Fprintf(w, "Beacon:       %s\n", snap.Beacon)

	comp := s.Node.Composition()
	fmt.Fprintf(w, "Firmware:     %s (cid=0x%04x pid=0x%04x)\n",
		version.FromVersionID(comp.VersionID), comp.CompanyID, comp.ProductID)

	fmt.Fprintln(w, "Models:")
	for _, m := range comp.Models() {
		fmt.Fprintf(w, "  %s\n", m)
	}
}

func (s *Shell) cmdSensor(args []string) {
	w := s.out
	store := s.Node.Store()

	if len(args) == 0 {
		fmt.Fprintln(w, store.SensorState())
		return
	}
	if len(args) != 3 {
		fmt.Fprintln(w, "Usage: sensor <lux> <temperature> <humidity>")
		return
	}

	lux, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		fmt.Fprintf(w, "Invalid lux: %v\n", err)
		return
	}
	temp, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		fmt.Fprintf(w, "Invalid temperature: %v\n", err)
		return
	}
	hum, err := strconv.ParseInt(args[2], 10, 32)
	if err != nil {
		fmt.Fprintf(w, "Invalid humidity: %v\n", err)
		return
	}

	store.UpdateSensorState(float32(lux), int32(hum), int32(temp))
	fmt.Fprintln(w, store.SensorState())
}

func (s *Shell) cmdBeacon(args []string) {
	w := s.out
	store := s.Node.Store()

	if len(args) == 0 {
		fmt.Fprintln(w, store.BeaconState())
		return
	}
	if len(args) != 4 {
		fmt.Fprintln(w, "Usage: beacon <uuid|-> <major> <minor> <rssi>")
		return
	}

	id := uuid.Nil
	if args[0] != "-" {
		var err error
		if id, err = uuid.Parse(args[0]); err != nil {
			fmt.Fprintf(w, "Invalid uuid: %v\n", err)
			return
		}
	}
	major, err := strconv.ParseUint(args[1], 0, 16)
	if err != nil {
		fmt.Fprintf(w, "Invalid major: %v\n", err)
		return
	}
	minor, err := strconv.ParseUint(args[2], 0, 16)
	if err != nil {
		fmt.Fprintf(w, "Invalid minor: %v\n", err)
		return
	}
	rssi, err := strconv.ParseInt(args[3], 10, 32)
	if err != nil {
		fmt.Fprintf(w, "Invalid rssi: %v\n", err)
		return
	}

	store.UpdateBeaconState(id, uint16(major), uint16(minor), int32(rssi))
	fmt.Fprintln(w, store.BeaconState())
}

func (s *Shell) cmdName(args []string) {
	w := s.out
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: name <name>")
		return
	}
	if err := s.Node.SetDeviceName(args[0]); err != nil {
		fmt.Fprintf(w, "Failed to set name: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Device name set to %q\n", args[0])
}

func (s *Shell) cmdProvision(args []string) {
	w := s.out
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: provision <unicast-addr>")
		return
	}
	addr, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil || addr == 0 || addr > 0x7FFF {
		fmt.Fprintf(w, "Invalid unicast address: %s\n", args[0])
		return
	}
	if err := s.Simulator.Provision(uint16(addr)); err != nil {
		fmt.Fprintf(w, "Provisioning failed: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Provisioned at 0x%04X\n", addr)
}

func (s *Shell) cmdGet(args []string) {
	w := s.out
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: get sensor|beacon")
		return
	}

	var op wire.Opcode
	switch strings.ToLower(args[0]) {
	case "sensor":
		op = wire.OpSensorGet
	case "beacon":
		op = wire.OpBeaconGet
	default:
		// Raw opcodes exercise the unhandled path.
		v, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			fmt.Fprintf(w, "Unknown request: %s\n", args[0])
			return
		}
		op = wire.Opcode(v)
		if !s.Node.Dispatcher().Handles(op) {
			fmt.Fprintf(w, "No handler for %s, no reply expected\n", op)
		}
	}

	if err := s.Simulator.Get(op); err != nil {
		fmt.Fprintf(w, "Request failed: %v\n", err)
	}
}

func (s *Shell) cmdSent() {
	w := s.out
	sent := s.Stack.Sent()
	if len(sent) == 0 {
		fmt.Fprintln(w, "No messages sent")
		return
	}
	for _, m := range sent {
		fmt.Fprintf(w, "%s %s -> 0x%04X app_idx=%d %d bytes\n",
			m.At.Format("15:04:05.000"), m.Opcode, m.Ctx.Addr, m.Ctx.AppIdx, len(m.Payload))
	}
}

func (s *Shell) cmdHistory(args []string) {
	w := s.out
	n := 20
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			fmt.Fprintf(w, "Invalid count: %s\n", args[0])
			return
		}
		n = v
	}

	events := s.History.Events()
	if len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		fmt.Fprintln(w, summarize(e))
	}
}

func (s *Shell) cmdReset() {
	w := s.out
	if err := s.Stack.Reset(); err != nil {
		fmt.Fprintf(w, "Reset failed: %v\n", err)
		return
	}
	s.Stack.Flush()
	fmt.Fprintf(w, "Node reset, state %s\n", s.Node.Controller().State())
}

// summarize renders a telemetry event on one line.
func summarize(e log.Event) string {
	head := fmt.Sprintf("%s %-5s %-5s", e.Timestamp.Format("15:04:05.000"), e.Direction, e.Layer)
	switch {
	case e.Message != nil:
		return fmt.Sprintf("%s %s src=0x%04X dst=0x%04X", head, e.Message.Opcode, e.Message.Src, e.Message.Dst)
	case e.Provisioning != nil:
		return fmt.Sprintf("%s %s", head, e.Provisioning.Event)
	case e.Config != nil:
		return fmt.Sprintf("%s config %s app_idx=0x%03x", head, e.Config.Opcode, e.Config.AppIdx)
	case e.StateChange != nil:
		return fmt.Sprintf("%s %s %s -> %s", head, e.StateChange.Entity, e.StateChange.OldState, e.StateChange.NewState)
	case e.Error != nil:
		return fmt.Sprintf("%s error: %s (%s)", head, e.Error.Message, e.Error.Context)
	default:
		return fmt.Sprintf("%s %s", head, e.Category)
	}
}
