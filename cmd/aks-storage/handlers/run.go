package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/config/wizard"
	"github.com/imamik/aks-storage/internal/provisioning"
	"github.com/imamik/aks-storage/internal/ui/tui"
)

// RunOptions holds the run flags that are not part of the Config.
type RunOptions struct {
	GlobalOptions

	// Interactive asks for unset selections with a form.
	Interactive bool
	// TUI shows the dashboard instead of log lines when stdout is a terminal.
	TUI bool

	// StaticJobTimeout and DynamicJobTimeout override the validation
	// timeouts when non-zero.
	StaticJobTimeout  time.Duration
	DynamicJobTimeout time.Duration
}

// Run provisions the selected use cases and validates them.
//
// The run executes these phases in order:
//  1. preflight: configuration, credentials and name availability
//  2. infrastructure: resource group, managed identity and storage account
//  3. cluster: AKS cluster, kubeconfig, service account and federation
//  4. storage: per-case backing store, role assignments and manifests
//  5. validation: per-case writer job, reader pod and backing store checks
//
// A failure in the first three phases aborts the run with exit code 1.
// Per-case failures are recorded and reflected in the exit code.
func Run(ctx context.Context, v *viper.Viper, opts RunOptions) error {
	if err := config.ReadConfigFile(v, opts.ConfigPath); err != nil {
		return err
	}

	if opts.Interactive {
		if !isInteractiveTTY() {
			return errors.New("--interactive requires a terminal")
		}
		result, err := runWizard(ctx, wizard.FromViper(v))
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}
		wizard.Apply(v, result)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.EnsureID(); err != nil {
		return fmt.Errorf("failed to generate run id: %w", err)
	}

	useTUI := opts.TUI && isInteractiveTTY()
	logger, err := setupLogger(opts.GlobalOptions, useTUI)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	timeouts := config.LoadTimeouts()
	if opts.StaticJobTimeout > 0 {
		timeouts.StaticJob = opts.StaticJobTimeout
	}
	if opts.DynamicJobTimeout > 0 {
		timeouts.DynamicJob = opts.DynamicJobTimeout
	}

	az, err := newAzureClient(ctx, cfg.SubscriptionID, timeouts, logger)
	if err != nil {
		return fmt.Errorf("failed to create Azure client: %w", err)
	}

	observer := provisioning.NewZapObserver(logger)
	pCtx := newProvisioningContext(ctx, cfg, az, observer)
	pCtx.Timeouts = timeouts
	pCtx.Metrics = provisioning.NewMetrics()
	pCtx.State.Run = config.NewRunState(cfg, az.SubscriptionID())
	if path := cfg.Output.StateFile; path != "" {
		pCtx.SaveState = func(s *config.RunState) error {
			return config.SaveState(path, s)
		}
	}

	logger.Info("starting run",
		zap.String("resourceGroup", cfg.Names().ResourceGroup),
		zap.String("location", cfg.Location),
		zap.Int("useCases", len(cfg.UseCases())),
		zap.Bool("sharedKeyAccess", cfg.AllowSharedKeyAccess()),
	)

	runErr := executePhases(pCtx, observer, useTUI)

	// A failed run still records what it created so destroy can find it.
	if runErr != nil && pCtx.State.ResourceGroup != nil {
		if err := pCtx.Persist(); err != nil {
			logger.Warn("failed to save run state", zap.Error(err))
		}
	}

	code := provisioning.ExitFatal
	if runErr == nil {
		code = provisioning.ExitCode(pCtx.State.Results)
	}
	pCtx.Metrics.RecordRun(code)
	if path := cfg.Output.MetricsFile; path != "" {
		if err := pCtx.Metrics.WriteToFile(path); err != nil {
			logger.Warn("failed to write metrics", zap.String("path", path), zap.Error(err))
		}
	}

	if runErr != nil {
		return &ExitError{Code: code, Err: runErr}
	}

	fmt.Fprint(stdout, renderRunSummary(cfg, pCtx.State))
	if code != provisioning.ExitAllPassed {
		s := provisioning.Summarize(pCtx.State.Results)
		return &ExitError{Code: code, Err: fmt.Errorf("%d of %d use cases failed", s.Failed, s.Total)}
	}
	return nil
}

// executePhases runs the pipeline, following it with the dashboard when
// useTUI is set.
func executePhases(pCtx *provisioning.Context, observer *provisioning.ZapObserver, useTUI bool) error {
	phases := newPhases()
	if !useTUI {
		return provisioning.RunPhases(pCtx, phases)
	}

	cfg := pCtx.Config
	model := tui.NewRunModel(cfg.Names().ResourceGroup, cfg.Location, cfg.UseCases())
	_, err := runDashboard(pCtx.Context, model, func(ctx context.Context, send tui.Sender) error {
		observer.OnEvent(func(e provisioning.Event) {
			if msg, ok := tui.FromEvent(e); ok {
				send(msg)
			}
		})
		pCtx.Context = ctx
		return provisioning.RunPhases(pCtx, phases)
	})
	return err
}
