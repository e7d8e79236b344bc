package infrastructure

import (
	"fmt"

	"github.com/imamik/aks-storage/internal/provisioning"
)

// ProvisionResourceGroup ensures the run's resource group exists with the
// use case and key access tags.
func (p *Provisioner) ProvisionResourceGroup(ctx *provisioning.Context) error {
	name := ctx.Config.Names().ResourceGroup
	ctx.Observer.Printf("[%s] Reconciling resource group %s in %s...", phase, name, ctx.Config.Location)

	rg, err := ctx.Azure.EnsureResourceGroup(ctx, name, ctx.Config.Location, ctx.Config.Tags())
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "resource group", name, err)
		return fmt.Errorf("failed to ensure resource group %s: %w", name, err)
	}

	ctx.State.ResourceGroup = rg
	ctx.Metrics.RecordResource("resource group", rg.Created)
	provisioning.LogResourceEnsured(ctx.Observer, phase, "resource group", rg.Name, rg.ID, rg.Created)
	return nil
}
