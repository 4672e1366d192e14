package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // nothing
	LevelError               // heartbeats only; failures surface through span ends at higher levels
	LevelPhase               // commands and operations
	LevelDetail              // plus range-product splits
	LevelDebug               // plus leaves
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// widest is the coarsest-to-finest bound each level admits.
var widest = [...]Scope{
	LevelPhase:  ScopeOp,
	LevelDetail: ScopeRange,
	LevelDebug:  ScopeLeaf,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level. The empty string is LevelOff.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil //nolint:gosec // G115: i indexes a five-element array.
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(widest) {
		return false
	}
	return scope != 0 && scope <= widest[l]
}
