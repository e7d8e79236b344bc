package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/imamik/aks-storage/internal/ui/benchmarks"
)

// render styles text for the given state.
func render(state stepState, text string) string {
	return stateStyles[state].style.Render(text)
}

// marker returns the styled status marker for a state. Running steps
// animate with the spinner frame.
func marker(state stepState, frame int) string {
	m := stateStyles[state].marker
	if state == stateRunning {
		m = currentSpinner(frame)
	}
	return render(state, m)
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)
	if len(m.Cases) > 0 {
		renderCases(&b, m)
	}
	if len(m.Activity) > 0 {
		renderActivity(&b, m)
	}
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("aks-storage: %s", m.Title)
	if m.Location != "" {
		title += fmt.Sprintf(" (%s)", m.Location)
	}
	b.WriteString(headerStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += render(stateFailed, fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += render(statePassed, "Finished")
	default:
		if p, ok := m.activePhase(); ok {
			status += marker(stateRunning, m.SpinnerFrame) + " " + runningNameStyle.Render(p.Name)
		} else {
			status += mutedStyle.Render("Starting...")
		}
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := barDoneStyle.Render(strings.Repeat("█", filled)) +
		barTodoStyle.Render(strings.Repeat("░", barWidth-filled))

	pct := int(progress * 100)
	eta := ""
	if m.EstimatedRemaining > 0 {
		eta = fmt.Sprintf(" ETA %s", formatDuration(m.EstimatedRemaining))
	}
	if m.PerformanceScale != 0 && m.PerformanceScale != 1.0 {
		eta += fmt.Sprintf("  speed x%.2f", m.PerformanceScale)
	}

	fmt.Fprintf(b, "  %s %d%%%s\n", bar, pct, eta)
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		state, dur := phaseState(phase), ""
		switch state {
		case statePassed:
			if phase.Duration > 0 {
				dur = formatDuration(phase.Duration)
			}
		case stateRunning:
			dur = formatDuration(time.Since(phase.StartedAt))
		}
		fmt.Fprintf(b, "    %s %s %s\n", marker(state, m.SpinnerFrame), render(state, fmt.Sprintf("%-18s", phase.Name)), mutedStyle.Render(dur))
	}
}

func phaseState(p PhaseStatus) stepState {
	switch {
	case p.Err != nil:
		return stateFailed
	case p.Done:
		return statePassed
	case p.Active:
		return stateRunning
	default:
		return statePending
	}
}

func renderCases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Use Cases"))
	b.WriteString("\n")

	for _, c := range m.Cases {
		state := statePending
		if c.Done {
			state = stateFailed
			if c.Passed {
				state = statePassed
			}
		}
		fmt.Fprintf(b, "    %s %s\n", marker(state, m.SpinnerFrame), render(state, c.Name))
		if state == stateFailed && c.Message != "" {
			fmt.Fprintf(b, "         %s\n", mutedStyle.Render(c.Message))
		}
	}
}

func renderActivity(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Recent Activity"))
	b.WriteString("\n")

	for _, line := range m.Activity {
		fmt.Fprintf(b, "    %s\n", mutedStyle.Render(line))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	pulse := ""
	if !m.Done && m.Err == nil {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " working"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s%s  |  q: quit", elapsed, pulse)))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// calculateProgress weights each phase by its benchmark duration.
func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}

	var total, done float64
	for _, p := range m.Phases {
		w := float64(benchmarks.DefaultTimings[p.Key])
		if w == 0 {
			w = 1
		}
		total += w
		if p.Done {
			done += w
		}
	}
	if total == 0 {
		return 0
	}
	return done / total
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
