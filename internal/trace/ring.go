package trace

import (
	"io"
	"sync"
)

const defaultRingSize = 4096

// RingTracer keeps the most recent events in a fixed-size circular buffer.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int    // slot the next event goes to
	total  uint64 // events ever stored
	level  Level
}

// NewRingTracer returns a ring holding up to capacity events (4096 if
// capacity is not positive).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	t.events[t.next] = *ev
	t.next = (t.next + 1) % len(t.events)
	t.total++
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.total < uint64(len(t.events)) {
		return append([]Event(nil), t.events[:t.next]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Dropped returns how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := uint64(len(t.events)); t.total > n {
		return t.total - n
	}
	return 0
}

// Dump writes the stored events to w, oldest first.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	var buf []byte
	for _, ev := range t.Snapshot() {
		buf = AppendEvent(buf[:0], &ev, format)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
