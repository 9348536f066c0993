package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math"
	mrand "math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh/sim"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/node"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// clientAddr is the unicast address of the simulated polling client.
const clientAddr uint16 = 0x0001

// Simulator feeds synthetic readings into the node and plays the
// provisioner and client roles on the simulated stack.
type Simulator struct {
	node   *node.Node
	stack  *sim.Stack
	logger *slog.Logger
	config SimulationConfig

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	appIdx  uint16
	started time.Time
}

func newSimulator(n *node.Node, stack *sim.Stack, logger *slog.Logger, cfg SimulationConfig) *Simulator {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	return &Simulator{node: n, stack: stack, logger: logger, config: cfg}
}

// Start runs the sensor driver (and poll client, if configured) until Stop
// or ctx is cancelled.
func (s *Simulator) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.started = time.Now()
	go s.run(ctx, s.done)
}

// Stop halts the driver and waits for it to exit.
func (s *Simulator) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Simulator) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	sample := time.NewTicker(s.config.Interval)
	defer sample.Stop()

	var poll <-chan time.Time
	if s.config.PollInterval > 0 {
		t := time.NewTicker(s.config.PollInterval)
		defer t.Stop()
		poll = t.C
	}

	s.Sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sample.C:
			s.Sample()
		case <-poll:
			for _, op := range []wire.Opcode{wire.OpSensorGet, wire.OpBeaconGet} {
				if err := s.Get(op); err != nil {
					s.logger.Debug("poll failed", "opcode", op, "error", err)
				}
			}
		}
	}
}

// Sample writes one synthetic reading into the store. Values follow a slow
// daily curve plus noise.
func (s *Simulator) Sample() {
	s.mu.Lock()
	elapsed := time.Since(s.started).Seconds()
	s.mu.Unlock()

	phase := math.Sin(2 * math.Pi * elapsed / 600)
	lux := float32(300 + 250*phase + mrand.Float64()*20)
	temp := int32(21 + 3*phase + mrand.Float64()*2)
	hum := int32(45 - 10*phase + mrand.Float64()*4)

	store := s.node.Store()
	store.UpdateSensorState(lux, hum, temp)

	// Only RSSI moves; uuid.Nil keeps the configured identity.
	b := store.BeaconState()
	store.UpdateBeaconState(uuid.Nil, b.Major, b.Minor, int32(-55-mrand.IntN(20)))

	s.logger.Debug("sensor sample", "lux", lux, "temperature", temp, "humidity", hum)
}

// Provision provisions the node at addr, adds a random AppKey and binds
// both vendor models to it.
func (s *Simulator) Provision(addr uint16) error {
	if err := s.stack.Provision(sim.ProvisioningData{Addr: addr}); err != nil {
		return fmt.Errorf("provision: %w", err)
	}
	s.stack.Flush()

	var key [16]byte
	if _, err := rand.Read(key[:]); err != nil {
		return err
	}
	s.mu.Lock()
	appIdx := s.appIdx
	s.mu.Unlock()

	if err := s.stack.AddAppKey(0, appIdx, key); err != nil {
		return fmt.Errorf("app key add: %w", err)
	}
	for _, mid := range []uint16{mesh.ModelIDSensorServer, mesh.ModelIDBeaconServer} {
		if err := s.stack.BindModel(appIdx, wire.CompanyIDEspressif, mid); err != nil {
			return fmt.Errorf("model app bind: %w", err)
		}
	}
	s.stack.Flush()
	s.logger.Info("simulated provisioning complete", "addr", fmt.Sprintf("0x%04X", addr))
	return nil
}

// Get sends op from the simulated client and logs the decoded reply.
func (s *Simulator) Get(op wire.Opcode) error {
	s.mu.Lock()
	appIdx := s.appIdx
	s.mu.Unlock()

	before := len(s.stack.Sent())
	if err := s.stack.Deliver(sim.Request{Src: clientAddr, AppIdx: appIdx, TTL: 7, Opcode: op}); err != nil {
		return err
	}
	s.stack.Flush()

	sent := s.stack.Sent()
	if len(sent) == before {
		return fmt.Errorf("no reply to %s", op)
	}
	reply := sent[len(sent)-1]

	switch reply.Opcode {
	case wire.OpSensorStatus:
		st, err := wire.DecodeSensorStatus(reply.Payload)
		if err != nil {
			return err
		}
		s.logger.Info("client received sensor status", "reading", st.String())
	case wire.OpBeaconStatus:
		b, err := wire.DecodeBeaconStatus(reply.Payload)
		if err != nil {
			return err
		}
		s.logger.Info("client received beacon status", "beacon", b.String())
	}
	return nil
}
