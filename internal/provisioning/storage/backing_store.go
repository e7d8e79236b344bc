package storage

import (
	"errors"
	"fmt"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/provisioning"
)

var errNoStorageAccount = errors.New("no storage account provisioned for static use case")

// ensureBackingStore creates the blob container or file share that a
// statically provisioned volume binds to.
func ensureBackingStore(ctx *provisioning.Context, uc config.UseCase) error {
	account := ctx.State.StorageAccount
	if account == nil {
		return errNoStorageAccount
	}
	rg := ctx.Config.Names().ResourceGroup
	k := ctx.Config.Kubernetes

	var (
		kind, name string
		created    bool
		err        error
	)
	switch uc.Storage {
	case config.StorageBlob:
		kind, name = "blob container", k.ContainerName
		created, err = ctx.Azure.EnsureBlobContainer(ctx, rg, account.Name, name)
	case config.StorageFile:
		kind, name = "file share", k.ShareName
		created, err = ctx.Azure.EnsureFileShare(ctx, rg, account.Name, name, FileShareQuotaGiB)
	default:
		return fmt.Errorf("unsupported storage type %q", uc.Storage)
	}
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, kind, name, err)
		return fmt.Errorf("failed to ensure %s %s: %w", kind, name, err)
	}

	ctx.Metrics.RecordResource(kind, created)
	provisioning.LogResourceEnsured(ctx.Observer, phase, kind, name, account.Name+"/"+name, created)
	return nil
}
