package log

import "sync"

// MemoryLogger keeps the most recent events in memory.
// The interactive shell uses it for its history view; tests use it to
// assert on recorded telemetry.
type MemoryLogger struct {
	mu     sync.Mutex
	limit  int
	events []Event
}

// NewMemoryLogger creates a MemoryLogger retaining at most limit events.
// A limit of 0 or less keeps every event.
func NewMemoryLogger(limit int) *MemoryLogger {
	return &MemoryLogger{limit: limit}
}

// Log stores the event, evicting the oldest one when the limit is reached.
func (m *MemoryLogger) Log(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limit > 0 && len(m.events) >= m.limit {
		m.events = append(m.events[:0], m.events[1:]...)
	}
	m.events = append(m.events, event)
}

// Events returns a copy of the stored events, oldest first.
func (m *MemoryLogger) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Matching returns the stored events that match the filter.
func (m *MemoryLogger) Matching(filter Filter) []Event {
	var out []Event
	for _, e := range m.Events() {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards all stored events.
func (m *MemoryLogger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

// Compile-time interface satisfaction check.
var _ Logger = (*MemoryLogger)(nil)
