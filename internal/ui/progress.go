package ui

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Counter is a bignum.ProgressSink that the progress model polls.
type Counter struct {
	done atomic.Uint64
}

// Advance records count more integers folded into the product.
func (c *Counter) Advance(count uint64) { c.done.Add(count) }

// Done returns the number of integers folded so far.
func (c *Counter) Done() uint64 { return c.done.Load() }

// Outcome is delivered once the computation finishes.
type Outcome struct {
	Text string // canonical decimal result
	Err  error
}

const pollInterval = 100 * time.Millisecond

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type (
	pollMsg    struct{}
	outcomeMsg Outcome
)

type progressModel struct {
	title   string
	total   uint64
	counter *Counter
	outcome <-chan Outcome

	spin  spinner.Model
	bar   progress.Model
	width int

	began    time.Time
	took     time.Duration
	final    *Outcome
	quitting bool
}

// NewProgressModel returns a Bubble Tea model drawing the progress of a range
// product over total integers. It quits once outcome delivers.
func NewProgressModel(title string, total uint64, counter *Counter, outcome <-chan Outcome) tea.Model {
	spin := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))
	return &progressModel{
		title:   title,
		total:   total,
		counter: counter,
		outcome: outcome,
		spin:    spin,
		bar:     bar,
		width:   80,
		began:   time.Now(),
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, poll(), m.waitForOutcome())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.final != nil {
		// Only the bar's closing animation is left to run.
		if frame, ok := msg.(progress.FrameMsg); ok {
			return m, m.animate(frame)
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case outcomeMsg:
		out := Outcome(msg)
		m.final = &out
		m.took = time.Since(m.began)
		return m, tea.Sequence(m.bar.SetPercent(1), tea.Quit)
	case pollMsg:
		return m, tea.Batch(m.bar.SetPercent(m.fraction()), poll())
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		return m, m.animate(msg)
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *progressModel) animate(frame progress.FrameMsg) tea.Cmd {
	updated, cmd := m.bar.Update(frame)
	m.bar = updated.(progress.Model)
	return cmd
}

func (m *progressModel) View() string {
	var lines []string
	switch {
	case m.final == nil:
		done := min(m.counter.Done(), m.total)
		lines = []string{
			headerStyle.Render(fmt.Sprintf("%s %s (%d/%d)", m.spin.View(), m.title, done, m.total)),
			"",
			m.bar.View(),
		}
	case m.final.Err != nil:
		lines = []string{
			headerStyle.Render("failed: " + m.title),
			"  " + errStyle.Render(m.final.Err.Error()),
		}
	default:
		digits := okStyle.Render(fmt.Sprintf("%d digits", digitCount(m.final.Text)))
		lines = []string{
			headerStyle.Render(fmt.Sprintf("done: %s in %s", m.title, m.took.Round(time.Millisecond))),
			"",
			m.bar.ViewAs(1),
			"  " + digits + " " + Preview(m.final.Text, m.width-16),
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// Interrupted reports whether the user quit with ctrl+c before completion.
func Interrupted(model tea.Model) bool {
	m, ok := model.(*progressModel)
	return ok && m.quitting
}

func (m *progressModel) fraction() float64 {
	if m.total == 0 {
		return 1
	}
	return min(float64(m.counter.Done())/float64(m.total), 1)
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m *progressModel) waitForOutcome() tea.Cmd {
	ch := m.outcome
	return func() tea.Msg {
		// A closed channel without a value reads as an empty success.
		return outcomeMsg(<-ch)
	}
}

func digitCount(text string) int {
	return len(strings.TrimPrefix(text, "-"))
}

// Preview shortens a long decimal to width cells, keeping the leading digits
// and marking the cut with "...".
func Preview(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width, "...")
	}
}
