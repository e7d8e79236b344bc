package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/util/prerequisites"
)

// DoctorStatus represents the local diagnostic status.
type DoctorStatus struct {
	Config       CheckStatus   `json:"config"`
	Credentials  CheckStatus   `json:"credentials"`
	Subscription CheckStatus   `json:"subscription"`
	Selection    []string      `json:"selection,omitempty"`
	Names        *config.Names `json:"names,omitempty"`
	Tools        []ToolStatus  `json:"tools"`
}

// CheckStatus is the outcome of a single check.
type CheckStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ToolStatus represents an optional CLI lookup.
type ToolStatus struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Version string `json:"version,omitempty"`
	Purpose string `json:"purpose"`
}

// Healthy reports whether a run can start.
func (s DoctorStatus) Healthy() bool {
	return s.Config.OK && s.Credentials.OK && s.Subscription.OK
}

// Doctor checks the configuration, Azure credentials, subscription
// resolution and optional tools. It returns an error when a run could not
// start.
func Doctor(ctx context.Context, v *viper.Viper, g GlobalOptions, jsonOutput bool) error {
	status := diagnose(ctx, v, g)

	if jsonOutput {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	} else {
		fmt.Fprint(stdout, renderDoctor(status))
	}

	if !status.Healthy() {
		return &ExitError{Code: 1, Err: errors.New("doctor found problems")}
	}
	return nil
}

func diagnose(ctx context.Context, v *viper.Viper, g GlobalOptions) DoctorStatus {
	var status DoctorStatus

	for _, r := range checkTools(ctx, prerequisites.OptionalTools()).Results {
		status.Tools = append(status.Tools, ToolStatus{
			Name:    r.Tool.Name,
			Found:   r.Found,
			Version: r.Version,
			Purpose: r.Tool.Description,
		})
	}

	cfg, err := loadConfig(v, g.ConfigPath)
	if err != nil {
		status.Config = CheckStatus{Message: err.Error()}
		return status
	}
	status.Config = CheckStatus{OK: true, Message: fmt.Sprintf("%d use case(s), shared key access %s", len(cfg.UseCases()), onOff(cfg.AllowSharedKeyAccess()))}
	for _, uc := range cfg.UseCases() {
		status.Selection = append(status.Selection, uc.Description())
	}
	if cfg.ID != "" {
		names := cfg.Names()
		status.Names = &names
	}

	logger, err := setupLogger(g, true)
	if err != nil {
		logger = zap.NewNop()
	}

	az, err := newAzureClient(ctx, cfg.SubscriptionID, config.LoadTimeouts(), logger)
	if err != nil {
		status.Credentials = CheckStatus{Message: err.Error()}
		status.Subscription = CheckStatus{Message: "skipped"}
		return status
	}
	if err := az.CheckAccess(ctx); err != nil {
		status.Credentials = CheckStatus{Message: err.Error()}
	} else {
		status.Credentials = CheckStatus{OK: true, Message: "management token acquired"}
	}
	status.Subscription = CheckStatus{OK: true, Message: az.SubscriptionID()}
	return status
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// renderDoctor produces the styled doctor report.
func renderDoctor(s DoctorStatus) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  aks-storage doctor"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Checks"))
	b.WriteString("\n")
	renderCheck(&b, "Configuration", s.Config)
	renderCheck(&b, "Credentials", s.Credentials)
	renderCheck(&b, "Subscription", s.Subscription)

	if len(s.Selection) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Use Cases"))
		b.WriteString("\n")
		for _, uc := range s.Selection {
			fmt.Fprintf(&b, "    %s\n", uc)
		}
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Optional Tools"))
	b.WriteString("\n")
	for _, t := range s.Tools {
		icon := greenStyle.Render("✓")
		version := t.Version
		if !t.Found {
			icon = dimStyle.Render("○")
			version = "not found"
		}
		fmt.Fprintf(&b, "    %s %-10s %s\n", icon, t.Name, dimStyle.Render(version))
	}

	return b.String()
}

func renderCheck(b *strings.Builder, label string, c CheckStatus) {
	icon := greenStyle.Render("✓")
	if !c.OK {
		icon = redStyle.Render("✗")
	}
	fmt.Fprintf(b, "    %s %-14s %s\n", icon, label, dimStyle.Render(c.Message))
}
