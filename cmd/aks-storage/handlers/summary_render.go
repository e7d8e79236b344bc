package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/provisioning"
)

// Colors matching internal/ui/tui/styles.go palette.
var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// maxMessageWidth truncates failure messages in the results table.
const maxMessageWidth = 60

// renderRunSummary produces the lipgloss-styled result of a run.
func renderRunSummary(cfg *config.Config, state *provisioning.State) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  aks-storage: %s", cfg.Names().ResourceGroup)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	renderResources(&b, cfg, state)

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Use Cases"))
	b.WriteString("\n")
	b.WriteString(renderResultsTable(cfg, state))
	b.WriteString("\n")

	s := provisioning.Summarize(state.Results)
	b.WriteString("\n")
	line := fmt.Sprintf("  %d/%d use cases passed", s.Passed, s.Total)
	if s.Total > 0 && s.Passed == s.Total {
		b.WriteString(greenStyle.Render(line))
	} else {
		b.WriteString(redStyle.Render(line))
	}
	b.WriteString("\n")

	if state.Run != nil && cfg.Output.StateFile != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  Clean up with: aks-storage destroy --state-file %s", cfg.Output.StateFile)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderResources(b *strings.Builder, cfg *config.Config, state *provisioning.State) {
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Resources"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")

	names := cfg.Names()
	writeField(b, "Resource group", names.ResourceGroup)
	if state.Identity != nil {
		writeField(b, "Identity", fmt.Sprintf("%s (client id %s)", state.Identity.Name, state.Identity.ClientID))
	}
	if state.StorageAccount != nil {
		access := "enabled"
		if !state.StorageAccount.AllowSharedKeyAccess {
			access = "disabled"
		}
		writeField(b, "Storage account", fmt.Sprintf("%s (shared key %s)", state.StorageAccount.Name, access))
	}
	if state.Cluster != nil {
		writeField(b, "Cluster", state.Cluster.Name)
		writeField(b, "OIDC issuer", state.Cluster.OIDCIssuerURL)
	}
	if state.Run != nil && state.Run.Kubeconfig != "" {
		location := state.Run.Kubeconfig
		if state.KubeContext != "" {
			location = fmt.Sprintf("%s (context %s)", state.Run.Kubeconfig, state.KubeContext)
		}
		writeField(b, "Kubeconfig", location)
	}
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "    %-16s %s\n", label+":", value)
}

// renderResultsTable lists every selected use case, including ones the
// run never reached.
func renderResultsTable(cfg *config.Config, state *provisioning.State) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("#", "USE CASE", "RESULT", "KEYLESS", "DURATION", "DETAILS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true).Foreground(colorBlue)
			}
			return cellStyle
		})

	for _, uc := range cfg.UseCases() {
		r, ok := state.Result(uc)
		if !ok {
			t.Row(fmt.Sprint(uc.Number), uc.Description(), dimStyle.Render("skipped"), "-", "-", "")
			continue
		}
		t.Row(
			fmt.Sprint(uc.Number),
			uc.Description(),
			resultLabel(r),
			keylessLabel(r.Keyless),
			formatDuration(r.Duration),
			details(r),
		)
	}
	return t.String()
}

func resultLabel(r provisioning.CaseResult) string {
	if r.Passed {
		return greenStyle.Render("✓ passed")
	}
	return redStyle.Render(fmt.Sprintf("✗ %s", r.Stage))
}

func keylessLabel(keyless bool) string {
	if keyless {
		return "yes"
	}
	return "no"
}

func details(r provisioning.CaseResult) string {
	if r.Passed {
		return ""
	}
	msg := strings.ReplaceAll(r.Message, "\n", " ")
	if len(msg) > maxMessageWidth {
		msg = msg[:maxMessageWidth-3] + "..."
	}
	return msg
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Second).String()
}
