package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared with the summary and doctor output.
var (
	colorPass    = lipgloss.Color("#22c55e")
	colorFail    = lipgloss.Color("#ef4444")
	colorRunning = lipgloss.Color("#eab308")
	colorAccent  = lipgloss.Color("#3b82f6")
	colorMuted   = lipgloss.Color("#6b7280")
	colorText    = lipgloss.Color("#f9fafb")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	footerStyle  = mutedStyle.MarginTop(1)

	barDoneStyle = lipgloss.NewStyle().Foreground(colorPass)
	barTodoStyle = mutedStyle
)

// stepState is the display state shared by phases and use cases.
type stepState int

const (
	statePending stepState = iota
	stateRunning
	statePassed
	stateFailed
)

// stateStyles maps a step state to its marker and style.
var stateStyles = map[stepState]struct {
	marker string
	style  lipgloss.Style
}{
	statePending: {"[  ]", mutedStyle},
	stateRunning: {"[..]", lipgloss.NewStyle().Bold(true).Foreground(colorText)},
	statePassed:  {"[OK]", lipgloss.NewStyle().Foreground(colorPass)},
	stateFailed:  {"[!!]", lipgloss.NewStyle().Foreground(colorFail)},
}

// runningNameStyle highlights the name of the phase in progress.
var runningNameStyle = lipgloss.NewStyle().Foreground(colorRunning)

var spinnerFrames = []string{"[.  ]", "[.. ]", "[...]", "[ ..]", "[  .]"}
