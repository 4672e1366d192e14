package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // an operation started
	KindSpanEnd                   // an operation finished
	KindPoint                     // an instant with no duration
	KindHeartbeat                 // periodic liveness signal
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Coarser scopes have lower values,
// so a Level admits every scope up to some bound.
type Scope uint8

const (
	// ScopeCommand covers a whole CLI command.
	ScopeCommand Scope = iota + 1
	// ScopeOp covers one arithmetic operation (factorial, primality, division).
	ScopeOp
	// ScopeRange covers one split of a factorial range product.
	ScopeRange
	ScopeLeaf // a singleton or adjacent pair at the bottom of the range product
)

var scopeNames = [...]string{
	ScopeCommand: "command",
	ScopeOp:      "op",
	ScopeRange:   "range",
	ScopeLeaf:    "leaf",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is a single trace record. Tracers may retain the pointer they are
// given, so emitters build a fresh Event per call.
type Event struct {
	Time     time.Time
	Seq      uint64 // process-wide, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	GID      uint64 // goroutine, distinguishes forked range products
	Name     string // "factorial", "range", "leaf", a command name
	Detail   string
	Extra    map[string]string
}
