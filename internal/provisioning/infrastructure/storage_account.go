package infrastructure

import (
	"fmt"

	"github.com/imamik/aks-storage/internal/platform/azure"
	"github.com/imamik/aks-storage/internal/provisioning"
)

// ProvisionStorageAccount ensures the storage account used by statically
// provisioned volumes. Dynamic volumes get an account from the CSI driver,
// so nothing is created when no static use case is selected.
func (p *Provisioner) ProvisionStorageAccount(ctx *provisioning.Context) error {
	if !ctx.Config.NeedsStorageAccount() {
		ctx.Observer.Printf("[%s] No static use case selected, skipping storage account", phase)
		return nil
	}

	names := ctx.Config.Names()
	sharedKey := ctx.Config.AllowSharedKeyAccess()
	ctx.Observer.Printf("[%s] Reconciling storage account %s (shared key access: %t)...", phase, names.StorageAccount, sharedKey)

	account, err := ctx.Azure.EnsureStorageAccount(ctx, azure.StorageAccountOpts{
		ResourceGroup:        names.ResourceGroup,
		Name:                 names.StorageAccount,
		Location:             ctx.Config.Location,
		AllowSharedKeyAccess: sharedKey,
		Tags:                 ctx.Config.Tags(),
	})
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "storage account", names.StorageAccount, err)
		return fmt.Errorf("failed to ensure storage account %s: %w", names.StorageAccount, err)
	}
	if account.AllowSharedKeyAccess != sharedKey {
		return fmt.Errorf("storage account %s has shared key access %t, want %t",
			account.Name, account.AllowSharedKeyAccess, sharedKey)
	}

	ctx.State.StorageAccount = account
	if ctx.State.Run != nil {
		ctx.State.Run.StorageAccount = account.Name
	}
	ctx.Metrics.RecordResource("storage account", account.Created)
	provisioning.LogResourceEnsured(ctx.Observer, phase, "storage account", account.Name, account.ID, account.Created)
	return nil
}
