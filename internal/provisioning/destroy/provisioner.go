package destroy

import (
	"context"
	"fmt"

	"github.com/imamik/aks-storage/internal/provisioning"
)

const phase = "destroy"

// Provisioner handles run teardown.
type Provisioner struct{}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision deletes the run's resource group and waits for completion.
// A group that no longer exists is not an error.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	name := ResourceGroup(ctx)
	ctx.Observer.Printf("[%s] Starting teardown of %s", phase, name)

	exists, err := ctx.Azure.ResourceGroupExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up resource group %s: %w", name, err)
	}
	if !exists {
		ctx.Observer.Printf("[%s] Resource group %s does not exist, nothing to delete", phase, name)
		return nil
	}

	provisioning.LogResourceDeleting(ctx.Observer, phase, "resource group", name)

	deleteCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Delete)
	defer cancel()
	if err := ctx.Azure.DeleteResourceGroup(deleteCtx, name); err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "resource group", name, err)
		return fmt.Errorf("failed to delete resource group %s: %w", name, err)
	}

	provisioning.LogResourceDeleted(ctx.Observer, phase, "resource group", name)
	return nil
}

// ResourceGroup returns the group to delete.
func ResourceGroup(ctx *provisioning.Context) string {
	if run := ctx.State.Run; run != nil && run.ResourceGroup != "" {
		return run.ResourceGroup
	}
	return ctx.Config.Names().ResourceGroup
}
