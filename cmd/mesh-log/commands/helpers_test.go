package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// createTestLogFile writes events to a temporary log file and returns its path.
func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.mlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sessionEvents returns a short node session: provisioning, one sensor
// get with its reply, and an unhandled request error.
func sessionEvents() []log.Event {
	ts := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	node := "dddd0011-2233-4455-0000-000000000000"
	processing := 1500 * time.Microsecond

	return []log.Event{
		{
			Timestamp: ts,
			NodeID:    node,
			Direction: log.DirectionIn,
			Layer:     log.LayerStack,
			Category:  log.CategoryState,
			Provisioning: &log.ProvisioningEvent{
				Event: "PROV_COMPLETE",
				Addr:  0x0005,
			},
		},
		{
			Timestamp: ts.Add(time.Second),
			NodeID:    node,
			Direction: log.DirectionIn,
			Layer:     log.LayerStack,
			Category:  log.CategoryConfig,
			Address:   0x0005,
			Config: &log.ConfigEvent{
				Opcode: wire.OpAppKeyAdd,
				AppKey: []byte{0x01, 0x02},
			},
		},
		{
			Timestamp: ts.Add(2 * time.Second),
			NodeID:    node,
			Direction: log.DirectionIn,
			Layer:     log.LayerModel,
			Category:  log.CategoryMessage,
			Address:   0x0005,
			Message: &log.MessageEvent{
				Opcode: wire.OpSensorGet,
				Kind:   wire.KindSensorGet,
				Src:    0x0001,
				Dst:    0x0005,
			},
		},
		{
			Timestamp: ts.Add(2*time.Second + processing),
			NodeID:    node,
			Direction: log.DirectionOut,
			Layer:     log.LayerModel,
			Category:  log.CategoryMessage,
			Address:   0x0005,
			Message: &log.MessageEvent{
				Opcode:         wire.OpSensorStatus,
				Dst:            0x0001,
				PayloadSize:    22,
				Payload:        map[string]any{"device": "node1", "temperature": 21},
				ProcessingTime: &processing,
			},
		},
		{
			Timestamp: ts.Add(3 * time.Second),
			NodeID:    node,
			Direction: log.DirectionLocal,
			Layer:     log.LayerModel,
			Category:  log.CategoryError,
			Address:   0x0005,
			Error: &log.ErrorEventData{
				Layer:   log.LayerModel,
				Message: "send failed",
				Context: "sending 0xC102E5",
			},
		},
	}
}
