// Package tui provides a Bubble Tea-based terminal UI that follows a run.
package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/aks-storage/internal/provisioning"
)

// PhaseMsg reports progress of a pipeline phase.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// CaseMsg reports the outcome of a use case.
type CaseMsg struct {
	Slug    string
	Passed  bool
	Message string
}

// ActivityMsg carries a resource-level line for the activity feed.
type ActivityMsg struct {
	Line string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the run is complete.
type DoneMsg struct{}

// FromEvent converts a provisioning event into a TUI message. Events the
// dashboard does not display return false.
func FromEvent(e provisioning.Event) (tea.Msg, bool) {
	switch e.Type {
	case provisioning.EventPhaseStarted:
		return PhaseMsg{Phase: e.Phase}, true
	case provisioning.EventPhaseCompleted:
		return PhaseMsg{Phase: e.Phase, Done: true}, true
	case provisioning.EventPhaseFailed:
		return PhaseMsg{Phase: e.Phase, Done: true, Err: errors.New(strings.TrimPrefix(e.Message, "failed: "))}, true
	case provisioning.EventCasePassed, provisioning.EventCaseFailed:
		return CaseMsg{Slug: e.Resource, Passed: e.Type == provisioning.EventCasePassed, Message: e.Message}, true
	case provisioning.EventResourceCreated, provisioning.EventResourceExists,
		provisioning.EventResourceFailed, provisioning.EventResourceDeleted:
		return ActivityMsg{Line: e.Message}, true
	}
	return nil, false
}
