package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, path string, filter Filter) []Event {
	t.Helper()

	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	return events
}

func TestReaderIteratesEvents(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), NodeID: "node-1", Direction: DirectionIn, Layer: LayerStack, Category: CategoryState},
		{Timestamp: time.Now(), NodeID: "node-2", Direction: DirectionIn, Layer: LayerModel, Category: CategoryMessage},
		{Timestamp: time.Now(), NodeID: "node-3", Direction: DirectionOut, Layer: LayerModel, Category: CategoryMessage},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].NodeID != "node-1" {
		t.Errorf("first event NodeID = %q, want %q", read[0].NodeID, "node-1")
	}
	if read[2].NodeID != "node-3" {
		t.Errorf("last event NodeID = %q, want %q", read[2].NodeID, "node-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if event, err := reader.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderHandlesTruncatedTail(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), NodeID: "node-1", Layer: LayerStack},
		{Timestamp: time.Now(), NodeID: "node-2", Layer: LayerStack},
	})

	// Chop the last few bytes to simulate a crash mid-write.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-3], 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	events := readAll(t, path, Filter{})
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].NodeID != "node-1" {
		t.Errorf("NodeID = %q, want %q", events[0].NodeID, "node-1")
	}
}

func TestReaderFilterByNodeID(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), NodeID: "node-A", Layer: LayerStack},
		{Timestamp: time.Now(), NodeID: "node-B", Layer: LayerModel},
		{Timestamp: time.Now(), NodeID: "node-A", Layer: LayerStore},
	})

	events := readAll(t, path, Filter{NodeID: "node-A"})
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, e := range events {
		if e.NodeID != "node-A" {
			t.Errorf("event has NodeID=%q, want %q", e.NodeID, "node-A")
		}
	}
}

func TestReaderFilterByLayerAndCategory(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), Layer: LayerStack, Category: CategoryState},
		{Timestamp: time.Now(), Layer: LayerModel, Category: CategoryMessage},
		{Timestamp: time.Now(), Layer: LayerModel, Category: CategoryError},
		{Timestamp: time.Now(), Layer: LayerModel, Category: CategoryMessage},
	})

	layer := LayerModel
	if got := readAll(t, path, Filter{Layer: &layer}); len(got) != 3 {
		t.Errorf("layer filter: got %d events, want 3", len(got))
	}

	category := CategoryError
	got := readAll(t, path, Filter{Layer: &layer, Category: &category})
	if len(got) != 1 {
		t.Fatalf("layer+category filter: got %d events, want 1", len(got))
	}
	if got[0].Category != CategoryError {
		t.Errorf("Category = %v, want %v", got[0].Category, CategoryError)
	}
}

func TestReaderFilterByDirection(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), Direction: DirectionIn},
		{Timestamp: time.Now(), Direction: DirectionOut},
		{Timestamp: time.Now(), Direction: DirectionOut},
	})

	dir := DirectionOut
	if got := readAll(t, path, Filter{Direction: &dir}); len(got) != 2 {
		t.Errorf("got %d events, want 2", len(got))
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)

	path := createTestLogFile(t, []Event{
		{Timestamp: base.Add(-1 * time.Hour), NodeID: "before"},
		{Timestamp: base, NodeID: "start"},
		{Timestamp: base.Add(30 * time.Minute), NodeID: "inside"},
		{Timestamp: base.Add(1 * time.Hour), NodeID: "end"},
	})

	start := base
	end := base.Add(1 * time.Hour)
	events := readAll(t, path, Filter{TimeStart: &start, TimeEnd: &end})

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].NodeID != "start" || events[1].NodeID != "inside" {
		t.Errorf("unexpected events: %q, %q", events[0].NodeID, events[1].NodeID)
	}
}

func TestNewReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.mlog")); err == nil {
		t.Error("expected error for missing file")
	}
}
