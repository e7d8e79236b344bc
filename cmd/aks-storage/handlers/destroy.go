package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/provisioning"
)

// DestroyOptions holds the destroy flags.
type DestroyOptions struct {
	GlobalOptions

	// StateFile names the run to delete.
	StateFile string
	// ResourceGroup deletes a group directly, ignoring the state file.
	ResourceGroup string
	// Subscription overrides the subscription recorded in the state file.
	Subscription string
}

// Destroy deletes the resource group of a run and waits for completion.
//
// The group comes from --resource-group when given and from the run state
// file otherwise. Deleting the group removes the identity, the storage
// account, the cluster and, through AKS, the node resource group. The
// state file is removed once the group is gone.
func Destroy(ctx context.Context, opts DestroyOptions) error {
	run, err := destroyTarget(opts)
	if err != nil {
		return err
	}

	logger, err := setupLogger(opts.GlobalOptions, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	subscription := opts.Subscription
	if subscription == "" {
		subscription = run.SubscriptionID
	}

	timeouts := config.LoadTimeouts()
	az, err := newAzureClient(ctx, subscription, timeouts, logger)
	if err != nil {
		return fmt.Errorf("failed to create Azure client: %w", err)
	}

	cfg := config.Default()
	cfg.Group, cfg.ID = run.Group, run.ID

	pCtx := newProvisioningContext(ctx, cfg, az, provisioning.NewZapObserver(logger))
	pCtx.Timeouts = timeouts
	pCtx.State.Run = run

	logger.Info("destroying run", zap.String("resourceGroup", run.ResourceGroup), zap.String("subscription", az.SubscriptionID()))
	if err := newDestroyProvisioner().Provision(pCtx); err != nil {
		return err
	}

	if opts.ResourceGroup == "" && opts.StateFile != "" {
		if err := os.Remove(opts.StateFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("failed to remove state file", zap.String("path", opts.StateFile), zap.Error(err))
		}
	}
	return nil
}

// destroyTarget returns the run to delete.
func destroyTarget(opts DestroyOptions) (*config.RunState, error) {
	if opts.ResourceGroup != "" {
		return &config.RunState{ResourceGroup: opts.ResourceGroup}, nil
	}
	if opts.StateFile == "" {
		return nil, errors.New("nothing to destroy: pass --state-file or --resource-group")
	}
	return config.LoadState(opts.StateFile)
}
