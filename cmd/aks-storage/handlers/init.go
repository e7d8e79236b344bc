package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// writeConfig writes the wizard answers to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file
// usable with run --config.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx, wizard.FromViper(config.NewViper()))
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := writeConfig(result, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, result)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "aks-storage - AKS storage with workload identity")
	fmt.Fprintln(stdout, "================================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard selects the storage use cases to validate.")
	fmt.Fprintln(stdout, "Leave a choice on \"Both\" to run every combination.")
	fmt.Fprintln(stdout)
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, r *wizard.WizardResult) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Run Summary")
	fmt.Fprintln(stdout, "-----------")
	fmt.Fprintf(stdout, "  Group:      %s\n", r.Group)
	fmt.Fprintf(stdout, "  Location:   %s\n", r.Location)
	if r.DisableSharedKey {
		fmt.Fprintln(stdout, "  Shared key: disabled")
	}
	for _, uc := range r.UseCases() {
		fmt.Fprintf(stdout, "  Use case %d: %s\n", uc.Number, uc.Description())
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Next steps:")
	fmt.Fprintf(stdout, "  aks-storage run --config %s\n", outputPath)
}
