package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/ui/benchmarks"
)

// maxActivity bounds the activity feed.
const maxActivity = 6

// PhaseStatus is a pipeline phase for display.
type PhaseStatus struct {
	Name      string
	Key       string
	Done      bool
	Active    bool
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// CaseStatus is a use case for display.
type CaseStatus struct {
	Name    string
	Slug    string
	Done    bool
	Passed  bool
	Message string
}

// Model is the Bubble Tea model for the run dashboard.
type Model struct {
	Title    string
	Location string

	Phases   []PhaseStatus
	Cases    []CaseStatus
	Activity []string

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64
	StartTime          time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
}

// NewRunModel creates a model for a run of cases.
func NewRunModel(title, location string, cases []config.UseCase) Model {
	m := Model{
		Title:            title,
		Location:         location,
		StartTime:        time.Now(),
		PerformanceScale: 1.0,
		Phases: []PhaseStatus{
			{Name: "Preflight", Key: "preflight"},
			{Name: "Infrastructure", Key: "infrastructure"},
			{Name: "AKS Cluster", Key: "cluster"},
			{Name: "Storage", Key: "storage"},
			{Name: "Validation", Key: "validation"},
		},
	}
	for _, uc := range cases {
		m.Cases = append(m.Cases, CaseStatus{Name: uc.Description(), Slug: uc.Slug()})
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
		}

	case CaseMsg:
		m.updateCase(msg)

	case ActivityMsg:
		m.Activity = append(m.Activity, msg.Line)
		if len(m.Activity) > maxActivity {
			m.Activity = m.Activity[len(m.Activity)-maxActivity:]
		}

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA()
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Key == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Phases run in order; anything before idx has finished.
	for i := 0; i < idx; i++ {
		if m.Phases[i].Active {
			m.Phases[i].Duration = time.Since(m.Phases[i].StartedAt)
		}
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	p := &m.Phases[idx]
	switch {
	case msg.Done:
		if !p.StartedAt.IsZero() {
			p.Duration = time.Since(p.StartedAt)
		}
		p.Done = true
		p.Active = false
	case !p.Active:
		p.Active = true
		p.StartedAt = time.Now()
	}
	if msg.Err != nil {
		p.Err = msg.Err
	}
}

func (m *Model) updateCase(msg CaseMsg) {
	for i := range m.Cases {
		if m.Cases[i].Slug == msg.Slug {
			m.Cases[i].Done = true
			m.Cases[i].Passed = msg.Passed
			m.Cases[i].Message = msg.Message
			return
		}
	}
}

func (m *Model) activePhase() (PhaseStatus, bool) {
	for _, p := range m.Phases {
		if p.Active {
			return p, true
		}
	}
	return PhaseStatus{}, false
}

func (m *Model) updateETA() {
	current, ok := m.activePhase()
	if !ok {
		m.EstimatedRemaining = 0
		return
	}

	var history []benchmarks.PhaseRecord
	for _, p := range m.Phases {
		if p.Done && p.Err == nil {
			history = append(history, benchmarks.PhaseRecord{Phase: p.Key, Duration: p.Duration})
		}
	}
	elapsed := time.Since(current.StartedAt)

	m.PerformanceScale = benchmarks.PerformanceScale(current.Key, elapsed, history)
	m.EstimatedRemaining = benchmarks.EstimateRemainingWithScale(current.Key, elapsed, history, m.PerformanceScale)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
