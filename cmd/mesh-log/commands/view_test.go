package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

func TestFormatMessageEventRequest(t *testing.T) {
	event := sessionEvents()[2]

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "2026-03-02T09:00:02.000000Z") {
		t.Errorf("expected timestamp, got: %s", output)
	}
	if !strings.Contains(output, "[node:dddd0011]") {
		t.Errorf("expected shortened node ID, got: %s", output)
	}
	if !strings.Contains(output, "IN") || !strings.Contains(output, "MODEL") {
		t.Errorf("expected direction and layer, got: %s", output)
	}
	if !strings.Contains(output, "0xC002E5") {
		t.Errorf("expected opcode label, got: %s", output)
	}
	if !strings.Contains(output, "Kind: SENSOR_GET") {
		t.Errorf("expected request kind, got: %s", output)
	}
	if !strings.Contains(output, "Src: 0x0001  Dst: 0x0005") {
		t.Errorf("expected addresses, got: %s", output)
	}
}

func TestFormatMessageEventReply(t *testing.T) {
	event := sessionEvents()[3]

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if strings.Contains(output, "Kind:") {
		t.Errorf("replies should not show a kind, got: %s", output)
	}
	if !strings.Contains(output, "Duration: 1.500ms") {
		t.Errorf("expected processing time, got: %s", output)
	}
	if !strings.Contains(output, "22 bytes") {
		t.Errorf("expected payload size, got: %s", output)
	}
	if !strings.Contains(output, `"device":"node1"`) {
		t.Errorf("expected JSON payload, got: %s", output)
	}
}

func TestFormatProvisioningEvent(t *testing.T) {
	code := 0
	event := log.Event{
		Timestamp: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Layer:     log.LayerStack,
		Provisioning: &log.ProvisioningEvent{
			Event:   "PROV_ENABLE_COMPLETE",
			ErrCode: &code,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "[node:-]") {
		t.Errorf("expected placeholder node ID, got: %s", output)
	}
	if !strings.Contains(output, "PROV_ENABLE_COMPLETE") {
		t.Errorf("expected event name, got: %s", output)
	}
	if !strings.Contains(output, "ErrCode: 0") {
		t.Errorf("expected error code, got: %s", output)
	}
}

func TestFormatConfigEvents(t *testing.T) {
	t.Run("app key add", func(t *testing.T) {
		var buf bytes.Buffer
		formatEvent(&buf, sessionEvents()[1])
		output := buf.String()

		if !strings.Contains(output, "AppKeyAdd") {
			t.Errorf("expected AppKeyAdd label, got: %s", output)
		}
		if !strings.Contains(output, "AppKey: 0102") {
			t.Errorf("expected hex key, got: %s", output)
		}
	})

	t.Run("model app bind", func(t *testing.T) {
		event := log.Event{
			Config: &log.ConfigEvent{
				Opcode:      wire.OpModelAppBind,
				ElementAddr: 0x0005,
				CompanyID:   wire.CompanyIDEspressif,
				ModelID:     0x1414,
			},
		}

		var buf bytes.Buffer
		formatEvent(&buf, event)
		output := buf.String()

		if !strings.Contains(output, "ModelAppBind") {
			t.Errorf("expected ModelAppBind label, got: %s", output)
		}
		if !strings.Contains(output, "Model: 02e5:1414") {
			t.Errorf("expected model id, got: %s", output)
		}
	})
}

func TestFormatStateChangeEvent(t *testing.T) {
	event := log.Event{
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityStack,
			OldState: "LINK_OPEN",
			NewState: "PROVISIONED",
			Reason:   "link closed",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "Entity: STACK") {
		t.Errorf("expected entity, got: %s", output)
	}
	if !strings.Contains(output, "LINK_OPEN -> PROVISIONED") {
		t.Errorf("expected transition, got: %s", output)
	}
	if !strings.Contains(output, "Reason: link closed") {
		t.Errorf("expected reason, got: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sessionEvents()[4])
	output := buf.String()

	if !strings.Contains(output, "Message: send failed") {
		t.Errorf("expected message, got: %s", output)
	}
	if !strings.Contains(output, "Context: sending 0xC102E5") {
		t.Errorf("expected context, got: %s", output)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0.500us"},
		{1500 * time.Microsecond, "1.500ms"},
		{2500 * time.Millisecond, "2.500s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := parseLayer("Model"); err != nil || l != log.LayerModel {
		t.Errorf("parseLayer(Model) = %v, %v", l, err)
	}
	if _, err := parseLayer("wire"); err == nil {
		t.Error("expected error for unknown layer")
	}
	if d, err := parseDirection("LOCAL"); err != nil || d != log.DirectionLocal {
		t.Errorf("parseDirection(LOCAL) = %v, %v", d, err)
	}
	if c, err := parseCategory("config"); err != nil || c != log.CategoryConfig {
		t.Errorf("parseCategory(config) = %v, %v", c, err)
	}
	if _, err := parseCategory("control"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestRunViewFilters(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())

	var buf bytes.Buffer
	if err := RunView(path, FilterOptions{Direction: "out"}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if strings.Count(output, "[node:") != 1 {
		t.Errorf("expected exactly one event, got: %s", output)
	}
	if !strings.Contains(output, "0xC102E5") {
		t.Errorf("expected the sensor status reply, got: %s", output)
	}
}

func TestRunViewInvalidFilter(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())

	var buf bytes.Buffer
	if err := RunView(path, FilterOptions{Layer: "transport"}, &buf); err == nil {
		t.Error("expected error for unknown layer")
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := RunView("/nonexistent/test.mlog", FilterOptions{}, &buf); err == nil {
		t.Error("expected error for missing file")
	}
}
