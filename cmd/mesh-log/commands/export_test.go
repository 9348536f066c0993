package commands

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportToJSONL(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())
	out := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}

	var reply map[string]any
	if err := json.Unmarshal([]byte(lines[3]), &reply); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	msg, ok := reply["Message"].(map[string]any)
	if !ok {
		t.Fatalf("expected Message object, got: %s", lines[3])
	}
	payload, ok := msg["Payload"].(map[string]any)
	if !ok {
		t.Fatalf("expected decoded payload map, got: %v", msg["Payload"])
	}
	if payload["device"] != "node1" {
		t.Errorf("payload device = %v, want node1", payload["device"])
	}
}

func TestExportToCSV(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected header + 5 rows, got %d", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][8] != "processing_us" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	reply := rows[4]
	if reply[3] != "OUT" || reply[7] != "0xC102E5" || reply[8] != "1500" {
		t.Errorf("unexpected reply row: %v", reply)
	}
	if rows[2][6] != "AppKeyAdd" {
		t.Errorf("expected AppKeyAdd type, got: %v", rows[2])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())
	if err := RunExport(path, "xml", ""); err == nil {
		t.Error("expected error for unknown format")
	}
}
