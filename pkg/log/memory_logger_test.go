package log

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryLoggerKeepsOrder(t *testing.T) {
	m := NewMemoryLogger(0)

	for _, id := range []string{"a", "b", "c"} {
		m.Log(Event{Timestamp: time.Now(), NodeID: id})
	}

	events := m.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].NodeID != "a" || events[2].NodeID != "c" {
		t.Errorf("unexpected order: %q .. %q", events[0].NodeID, events[2].NodeID)
	}
}

func TestMemoryLoggerLimit(t *testing.T) {
	m := NewMemoryLogger(2)

	for _, id := range []string{"a", "b", "c"} {
		m.Log(Event{Timestamp: time.Now(), NodeID: id})
	}

	events := m.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].NodeID != "b" || events[1].NodeID != "c" {
		t.Errorf("expected oldest evicted, got %q, %q", events[0].NodeID, events[1].NodeID)
	}
}

func TestMemoryLoggerMatching(t *testing.T) {
	m := NewMemoryLogger(0)
	m.Log(Event{Category: CategoryMessage})
	m.Log(Event{Category: CategoryError})
	m.Log(Event{Category: CategoryMessage})

	cat := CategoryError
	if got := m.Matching(Filter{Category: &cat}); len(got) != 1 {
		t.Errorf("got %d error events, want 1", len(got))
	}
}

func TestMemoryLoggerReset(t *testing.T) {
	m := NewMemoryLogger(0)
	m.Log(Event{})
	m.Reset()

	if got := len(m.Events()); got != 0 {
		t.Errorf("got %d events after Reset, want 0", got)
	}
}

func TestMemoryLoggerConcurrent(t *testing.T) {
	m := NewMemoryLogger(0)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				m.Log(Event{})
				_ = m.Events()
			}
		}()
	}
	wg.Wait()

	if got := len(m.Events()); got != 400 {
		t.Errorf("got %d events, want 400", got)
	}
}
