// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/config/wizard"
	"github.com/imamik/aks-storage/internal/logging"
	"github.com/imamik/aks-storage/internal/platform/azure"
	"github.com/imamik/aks-storage/internal/provisioning"
	"github.com/imamik/aks-storage/internal/provisioning/cluster"
	"github.com/imamik/aks-storage/internal/provisioning/destroy"
	"github.com/imamik/aks-storage/internal/provisioning/infrastructure"
	"github.com/imamik/aks-storage/internal/provisioning/storage"
	"github.com/imamik/aks-storage/internal/provisioning/validation"
	"github.com/imamik/aks-storage/internal/ui/tui"
	"github.com/imamik/aks-storage/internal/util/prerequisites"
)

// GlobalOptions holds the flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
}

// Provisioner interface for testing - matches provisioning.Phase.
type Provisioner interface {
	Name() string
	Provision(*provisioning.Context) error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newAzureClient creates the Azure client for a subscription.
	newAzureClient = func(ctx context.Context, subscriptionID string, timeouts *config.Timeouts, logger *zap.Logger) (azure.Client, error) {
		return azure.NewRealClient(ctx, subscriptionID, azure.WithTimeouts(timeouts), azure.WithLogger(logger))
	}

	// newProvisioningContext creates a provisioning context.
	newProvisioningContext = provisioning.NewContext

	// newPhases returns the run pipeline in execution order.
	newPhases = func() []provisioning.Phase {
		return []provisioning.Phase{
			provisioning.NewPreflightPhase(),
			infrastructure.NewProvisioner(),
			cluster.NewProvisioner(),
			storage.NewProvisioner(),
			validation.NewProvisioner(),
		}
	}

	// newDestroyProvisioner creates the teardown phase.
	newDestroyProvisioner = func() Provisioner {
		return destroy.NewProvisioner()
	}

	// newLogger builds the CLI logger.
	newLogger = logging.New

	// runWizard asks for the run selection interactively.
	runWizard = wizard.RunWizard

	// runDashboard shows the terminal UI while a run executes.
	runDashboard = tui.RunDashboard

	// checkTools looks up the optional helper CLIs.
	checkTools = prerequisites.Check

	// isInteractiveTTY reports whether stdout is attached to a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// stdout receives rendered command output.
	stdout io.Writer = os.Stdout
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit code. Errors without
// an explicit code are fatal.
func ExitCode(err error) int {
	if err == nil {
		return provisioning.ExitAllPassed
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return provisioning.ExitFatal
}

// loadConfig reads the optional config file into v and builds the Config.
func loadConfig(v *viper.Viper, configPath string) (*config.Config, error) {
	if err := config.ReadConfigFile(v, configPath); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setupLogger builds the logger for a command and routes client-go logs
// into it. quiet drops console output and keeps the file sink.
func setupLogger(g GlobalOptions, quiet bool) (*zap.Logger, error) {
	opts := logging.Options{Level: g.LogLevel, File: g.LogFile}
	if quiet {
		opts.Console = io.Discard
	}
	logger, err := newLogger(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logging.RouteKlog(logger)
	return logger, nil
}
