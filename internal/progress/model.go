package progress

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var lastID int64

func nextID() int { return int(atomic.AddInt64(&lastID, 1)) }

// TickMsg re-samples the estimate. Ticks from another model, or from before
// the last Stop, carry a stale generation and are dropped.
type TickMsg struct {
	ID   int
	gen  int
	Time time.Time
}

type Option func(*Model)

func WithClock(c Clock) Option { return func(m *Model) { m.clock = c } }

func WithColors(active, success string) Option {
	return func(m *Model) { m.activeColor, m.successColor = active, success }
}

// Model is the bubbletea view of an Estimator. It owns one repeating tick
// while a step is active and releases it when work finishes or Stop is called.
type Model struct {
	id       int
	gen      int
	ticking  bool
	stopped  bool
	interval time.Duration
	clock    Clock
	est      *Estimator
	steps    []Step
	snap     Snapshot

	width        int
	activeColor  string
	successColor string
	bar          bprogress.Model
	doneBar      bprogress.Model
}

func New(title string, interval time.Duration, opts ...Option) *Model {
	m := &Model{
		id:           nextID(),
		interval:     interval,
		clock:        SystemClock{},
		est:          NewEstimator(title),
		width:        40,
		activeColor:  "#5A9BD5",
		successColor: "#4CAF50",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.interval <= 0 {
		m.interval = 250 * time.Millisecond
	}
	m.bar = bprogress.New(bprogress.WithSolidFill(m.activeColor), bprogress.WithoutPercentage(), bprogress.WithWidth(m.width))
	m.doneBar = bprogress.New(bprogress.WithSolidFill(m.successColor), bprogress.WithoutPercentage(), bprogress.WithWidth(m.width))
	return m
}

func (m *Model) ID() int            { return m.id }
func (m *Model) Snapshot() Snapshot { return m.snap }
func (m *Model) Ticking() bool      { return m.ticking }
func (m *Model) Steps() []Step      { return m.steps }

func (m *Model) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	m.width = w
	m.bar.Width = w
	m.doneBar.Width = w
}

func (m *Model) Init() tea.Cmd { return m.SetSteps(m.steps) }

// SetSteps replaces the caller-owned step list, re-samples and starts or
// cancels the tick as needed.
func (m *Model) SetSteps(steps []Step) tea.Cmd {
	m.steps = steps
	m.snap = m.est.Sample(m.clock.Now(), m.steps)
	if m.stopped {
		return nil
	}
	if !m.snap.Phase.Active() {
		m.cancel()
		return nil
	}
	if m.ticking {
		return nil
	}
	return m.schedule()
}

// Stop releases the timer; ticks already in flight are ignored. The model
// stays inert until Start.
func (m *Model) Stop() {
	m.stopped = true
	m.cancel()
}

func (m *Model) Start() tea.Cmd {
	m.stopped = false
	return m.SetSteps(m.steps)
}

func (m *Model) cancel() {
	if m.ticking {
		m.gen++
		m.ticking = false
	}
}

func (m *Model) schedule() tea.Cmd {
	m.ticking = true
	id, gen := m.id, m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, gen: gen, Time: t}
	})
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.gen != m.gen || m.stopped {
		return nil
	}
	m.ticking = false
	m.snap = m.est.Sample(m.clock.Now(), m.steps)
	if !m.snap.Phase.Active() {
		return nil
	}
	return m.schedule()
}

func (m *Model) View() string {
	s := m.snap
	if s.Phase == NoStepRunning {
		return lipgloss.NewStyle().Faint(true).Render("No inspection running")
	}
	var b strings.Builder
	label := s.Label
	if s.Phase == AllDone {
		label = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.successColor)).Render("✓ " + label)
	}
	b.WriteString(label + "\n")
	if s.Phase == AllDone {
		b.WriteString(m.doneBar.ViewAs(1) + "\n")
	} else {
		b.WriteString(m.bar.ViewAs(s.Percent/100) + "\n")
	}
	b.WriteString(m.doneBar.ViewAs(s.CompletedPercent / 100))
	b.WriteString(fmt.Sprintf(" %d%% complete\n", int(s.CompletedPercent)))
	for i, st := range m.steps {
		mark := "  "
		switch {
		case st.Done:
			mark = "✓ "
		case i == s.StepIndex:
			mark = "› "
		}
		b.WriteString(mark + st.Name + "\n")
	}
	return b.String()
}
