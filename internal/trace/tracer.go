package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives trace events. Implementations must be safe for concurrent
// use: forked range products emit from several goroutines at once.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory, dumped on demand
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if m >= ModeStream && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode converts a flag value to a StorageMode.
func ParseMode(s string) (StorageMode, error) {
	s = strings.ToLower(s)
	for m := ModeStream; int(m) < len(modeNames); m++ {
		if modeNames[m] == s {
			return m, nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level  Level
	Mode   StorageMode
	Format Format // FormatAuto picks NDJSON for .ndjson/.jsonl paths, text otherwise
	// Output takes precedence over OutputPath. It is closed with the tracer
	// if it implements io.Closer.
	Output     io.Writer
	OutputPath string // "" or "-" is stderr
	RingSize   int    // events kept by ModeRing and ModeBoth, default 4096
}

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	var sinks []Tracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, resolveFormat(cfg)))
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}

	switch len(sinks) {
	case 0:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	case 1:
		return sinks[0], nil
	default:
		return NewMultiTracer(cfg.Level, sinks...), nil
	}
}

// RingOf returns the in-memory ring behind t, if it keeps one.
func RingOf(t Tracer) *RingTracer {
	switch t := t.(type) {
	case *RingTracer:
		return t
	case *MultiTracer:
		for _, child := range t.tracers {
			if ring := RingOf(child); ring != nil {
				return ring
			}
		}
	}
	return nil
}

func resolveFormat(cfg Config) Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return NopCloser(os.Stderr), nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// NopCloser hides w's Close method, so closing the tracer leaves w open.
func NopCloser(w io.Writer) io.Writer { return nopCloser{w} }

type nopCloser struct{ io.Writer }
