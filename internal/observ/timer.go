package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one named step of a command: parsing operands, computing,
// rendering the result. Repeated runs of the same step fold into one Phase.
type Phase struct {
	Name  string
	Runs  int
	Total time.Duration
	Note  string // note of the last run, "failed" if it returned an error
}

// Timer accumulates phase durations in first-seen order. It is not safe for
// concurrent use; commands time their own goroutine only.
type Timer struct {
	order  []string
	phases map[string]*Phase
}

// NewTimer returns an empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make(map[string]*Phase, 4)}
}

// Start begins a run of phase name. The returned stop func records its
// duration with note.
func (t *Timer) Start(name string) (stop func(note string)) {
	began := time.Now()
	return func(note string) {
		p := t.phases[name]
		if p == nil {
			p = &Phase{Name: name}
			t.phases[name] = p
			t.order = append(t.order, name)
		}
		p.Runs++
		p.Total += time.Since(began)
		p.Note = note
	}
}

// Track runs fn as one run of phase name and returns its error.
func (t *Timer) Track(name string, fn func() error) error {
	stop := t.Start(name)
	err := fn()
	if err != nil {
		stop("failed")
		return err
	}
	stop("")
	return nil
}

// Phases returns a copy of the phases in first-seen order.
func (t *Timer) Phases() []Phase {
	out := make([]Phase, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.phases[name])
	}
	return out
}

// PhaseReport is the serializable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report lists every phase and their summed duration in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	for _, p := range t.Phases() {
		ms := millis(p.Total)
		r.TotalMS += ms
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, Runs: p.Runs, DurationMS: ms, Note: p.Note})
	}
	return r
}

// Summary renders the report as an aligned table for stderr.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-10s %9.3f ms", p.Name, p.DurationMS)
		if p.Runs > 1 {
			fmt.Fprintf(&sb, "  x%d", p.Runs)
		}
		if p.Note != "" {
			fmt.Fprintf(&sb, "  // %s", p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-10s %9.3f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return d.Seconds() * 1e3
}
