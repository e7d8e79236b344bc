package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	"github.com/imamik/aks-storage/internal/util/ptr"
	"github.com/imamik/aks-storage/internal/util/retry"
)

const storageAccountType = "Microsoft.Storage/storageAccounts"

// EnsureStorageAccount gets or creates a Standard_LRS StorageV2 account.
// Public blob access is always off and TLS 1.2 is required. An existing
// account whose shared key setting differs is updated to match.
func (c *RealClient) EnsureStorageAccount(ctx context.Context, opts StorageAccountOpts) (*StorageAccount, error) {
	get := func(ctx context.Context) (armstorage.Account, error) {
		resp, err := c.accounts.GetProperties(ctx, opts.ResourceGroup, opts.Name, nil)
		return resp.Account, err
	}

	attempts := 0
	res, err := (&EnsureOperation[armstorage.Account, armstorage.AccountCreateParameters]{
		Name:         opts.Name,
		ResourceType: "storage account",
		Get:          get,
		Create: func(ctx context.Context, params armstorage.AccountCreateParameters) (armstorage.Account, error) {
			attempts++
			if attempts > 1 {
				// An earlier attempt may have created the account before failing.
				existing, err := get(ctx)
				if err == nil {
					return existing, nil
				}
				if !IsNotFound(err) {
					return armstorage.Account{}, err
				}
			}
			available, reason, err := c.CheckStorageAccountName(ctx, opts.Name)
			if err != nil {
				return armstorage.Account{}, err
			}
			if !available {
				return armstorage.Account{}, retry.Fatal(fmt.Errorf("storage account name %s is not available: %s", opts.Name, reason))
			}
			poller, err := c.accounts.BeginCreate(ctx, opts.ResourceGroup, opts.Name, params, nil)
			if err != nil {
				return armstorage.Account{}, err
			}
			if _, err := poller.PollUntilDone(ctx, nil); err != nil {
				return armstorage.Account{}, err
			}
			// The create response can omit endpoints; read the account back.
			return get(ctx)
		},
		Update: func(ctx context.Context, existing armstorage.Account) (armstorage.Account, error) {
			if existing.Properties != nil && ptr.Deref(existing.Properties.AllowSharedKeyAccess, true) == opts.AllowSharedKeyAccess {
				return existing, nil
			}
			resp, err := c.accounts.Update(ctx, opts.ResourceGroup, opts.Name, armstorage.AccountUpdateParameters{
				Properties: &armstorage.AccountPropertiesUpdateParameters{
					AllowSharedKeyAccess: ptr.To(opts.AllowSharedKeyAccess),
				},
			}, nil)
			return resp.Account, err
		},
		CreateOptsMapper: func() armstorage.AccountCreateParameters {
			return storageAccountParameters(opts)
		},
	}).Execute(ctx, c)
	if err != nil {
		return nil, err
	}
	return storageAccountFromARM(opts.Name, res.Resource, res.Created), nil
}

// CheckStorageAccountName reports whether a storage account name is globally
// available, with the service's reason when it is not.
func (c *RealClient) CheckStorageAccountName(ctx context.Context, name string) (bool, string, error) {
	resp, err := c.accounts.CheckNameAvailability(ctx, armstorage.AccountCheckNameAvailabilityParameters{
		Name: ptr.To(name),
		Type: ptr.To(storageAccountType),
	}, nil)
	if err != nil {
		return false, "", fmt.Errorf("failed to check storage account name %s: %w", name, err)
	}
	return ptr.Deref(resp.NameAvailable, false), ptr.Deref(resp.Message, ""), nil
}

func storageAccountParameters(opts StorageAccountOpts) armstorage.AccountCreateParameters {
	return armstorage.AccountCreateParameters{
		Kind:     ptr.To(armstorage.KindStorageV2),
		Location: ptr.To(opts.Location),
		SKU: &armstorage.SKU{
			Name: ptr.To(armstorage.SKUNameStandardLRS),
		},
		Properties: &armstorage.AccountPropertiesCreateParameters{
			AllowBlobPublicAccess:  ptr.To(false),
			AllowSharedKeyAccess:   ptr.To(opts.AllowSharedKeyAccess),
			EnableHTTPSTrafficOnly: ptr.To(true),
			MinimumTLSVersion:      ptr.To(armstorage.MinimumTLSVersionTLS12),
		},
		Tags: ptr.StringMap(opts.Tags),
	}
}

func storageAccountFromARM(name string, a armstorage.Account, created bool) *StorageAccount {
	out := &StorageAccount{
		ID:                   ptr.Deref(a.ID, ""),
		Name:                 ptr.Deref(a.Name, name),
		AllowSharedKeyAccess: true,
		Created:              created,
	}
	if p := a.Properties; p != nil {
		out.AllowSharedKeyAccess = ptr.Deref(p.AllowSharedKeyAccess, true)
		if p.PrimaryEndpoints != nil {
			out.BlobEndpoint = ptr.Deref(p.PrimaryEndpoints.Blob, "")
			out.FileEndpoint = ptr.Deref(p.PrimaryEndpoints.File, "")
		}
	}
	if out.BlobEndpoint == "" {
		out.BlobEndpoint = fmt.Sprintf("https://%s.blob.core.windows.net/", out.Name)
	}
	if out.FileEndpoint == "" {
		out.FileEndpoint = fmt.Sprintf("https://%s.file.core.windows.net/", out.Name)
	}
	return out
}

// EnsureBlobContainer gets or creates a private blob container.
func (c *RealClient) EnsureBlobContainer(ctx context.Context, resourceGroup, account, name string) (bool, error) {
	res, err := (&EnsureOperation[armstorage.BlobContainer, armstorage.BlobContainer]{
		Name:         name,
		ResourceType: "blob container",
		Get: func(ctx context.Context) (armstorage.BlobContainer, error) {
			resp, err := c.containers.Get(ctx, resourceGroup, account, name, nil)
			return resp.BlobContainer, err
		},
		Create: func(ctx context.Context, params armstorage.BlobContainer) (armstorage.BlobContainer, error) {
			resp, err := c.containers.Create(ctx, resourceGroup, account, name, params, nil)
			return resp.BlobContainer, err
		},
		CreateOptsMapper: func() armstorage.BlobContainer {
			return armstorage.BlobContainer{
				ContainerProperties: &armstorage.ContainerProperties{
					PublicAccess: ptr.To(armstorage.PublicAccessNone),
				},
			}
		},
	}).Execute(ctx, c)
	if err != nil {
		return false, err
	}
	return res.Created, nil
}

// EnsureFileShare gets or creates an SMB file share with the given quota.
func (c *RealClient) EnsureFileShare(ctx context.Context, resourceGroup, account, name string, quotaGiB int32) (bool, error) {
	if quotaGiB <= 0 {
		return false, fmt.Errorf("file share quota must be positive, got %d", quotaGiB)
	}
	res, err := (&EnsureOperation[armstorage.FileShare, armstorage.FileShare]{
		Name:         name,
		ResourceType: "file share",
		Get: func(ctx context.Context) (armstorage.FileShare, error) {
			resp, err := c.shares.Get(ctx, resourceGroup, account, name, nil)
			return resp.FileShare, err
		},
		Create: func(ctx context.Context, params armstorage.FileShare) (armstorage.FileShare, error) {
			resp, err := c.shares.Create(ctx, resourceGroup, account, name, params, nil)
			return resp.FileShare, err
		},
		CreateOptsMapper: func() armstorage.FileShare {
			return armstorage.FileShare{
				FileShareProperties: &armstorage.FileShareProperties{
					ShareQuota:       ptr.To(quotaGiB),
					EnabledProtocols: ptr.To(armstorage.EnabledProtocolsSMB),
				},
			}
		},
	}).Execute(ctx, c)
	if err != nil {
		return false, err
	}
	return res.Created, nil
}
