package trace

import "sync"

// RingLogger keeps the most recent events in a fixed-size in-memory buffer.
// Older events are overwritten once the buffer is full. It is safe for
// concurrent use from multiple goroutines.
type RingLogger struct {
	mu   sync.Mutex
	buf  []Event
	next int
	full bool
}

// NewRingLogger creates a RingLogger holding up to capacity events.
// A capacity below 1 defaults to 64.
func NewRingLogger(capacity int) *RingLogger {
	if capacity < 1 {
		capacity = 64
	}
	return &RingLogger{buf: make([]Event, capacity)}
}

// Log stores an event, evicting the oldest when the buffer is full.
func (l *RingLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.buf[l.next] = event
	l.next = (l.next + 1) % len(l.buf)
	if l.next == 0 {
		l.full = true
	}
}

// Events returns the buffered events in chronological order.
func (l *RingLogger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.full {
		out := make([]Event, l.next)
		copy(out, l.buf[:l.next])
		return out
	}
	out := make([]Event, 0, len(l.buf))
	out = append(out, l.buf[l.next:]...)
	out = append(out, l.buf[:l.next]...)
	return out
}

// Compile-time interface satisfaction check.
var _ Logger = (*RingLogger)(nil)
