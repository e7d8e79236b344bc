package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender delivers messages to a running dashboard.
type Sender func(tea.Msg)

// RunDashboard shows m while run executes on a background goroutine. run
// receives a Sender for progress updates; its error ends the dashboard.
// Quitting the dashboard cancels the context handed to run.
func RunDashboard(ctx context.Context, m Model, run func(ctx context.Context, send Sender) error) (Model, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	runErr := make(chan error, 1)
	go func() {
		err := run(ctx, p.Send)
		runErr <- err
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	cancel()
	if err != nil {
		return m, fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if err := <-runErr; err != nil {
		return fm, err
	}
	return fm, nil
}
