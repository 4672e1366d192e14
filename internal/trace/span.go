package trace

import (
	"bytes"
	"maps"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

var (
	seq     atomic.Uint64
	spanIDs atomic.Uint64
)

// NextSeq returns the next process-wide event sequence number.
func NextSeq() uint64 { return seq.Add(1) }

// NextSpanID returns a fresh span ID. IDs start at 1; 0 means "no span".
func NextSpanID() uint64 { return spanIDs.Add(1) }

// getGoroutineID parses the current goroutine's ID out of its stack header,
// "goroutine 123 [running]:". Only called for events that are emitted.
func getGoroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b, ok := bytes.CutPrefix(b, []byte("goroutine "))
	if !ok {
		return 0
	}
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	gid, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is one traced operation. Extras attached with WithExtra are reported
// on the end event; a span may be annotated from several goroutines.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time

	mu    sync.Mutex
	extra map[string]string
}

// disabled is returned when the tracer filters the span out. Every method
// on it is a no-op.
var disabled = &Span{tracer: Nop}

func (s *Span) live() bool {
	return s != nil && s != disabled && s.tracer.Enabled()
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return disabled
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		gid:     getGoroutineID(),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	ev := s.event(KindSpanBegin, s.started)
	t.Emit(&ev)
	return s
}

// End emits the end event with detail and every extra plus "dur", and
// returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	dur := now.Sub(s.started)

	s.mu.Lock()
	extra := maps.Clone(s.extra)
	s.mu.Unlock()
	if extra == nil {
		extra = make(map[string]string, 1)
	}
	extra["dur"] = dur.String()

	ev := s.event(KindSpanEnd, now)
	ev.Detail = detail
	ev.Extra = extra
	s.tracer.Emit(&ev)
	return dur
}

// WithExtra records key=value for the end event and returns s.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	s.mu.Lock()
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	s.mu.Unlock()
	return s
}

// ID returns the span ID, 0 for a filtered-out span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) event(kind Kind, at time.Time) Event {
	return Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
	}
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      getGoroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
