package azure

import (
	"context"
)

// MockClient is a mock implementation of Client. Unset functions return
// plausible defaults.
type MockClient struct {
	Subscription string

	EnsureResourceGroupFunc func(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error)
	ResourceGroupExistsFunc func(ctx context.Context, name string) (bool, error)
	DeleteResourceGroupFunc func(ctx context.Context, name string) error

	EnsureIdentityFunc            func(ctx context.Context, resourceGroup, name, location string, tags map[string]string) (*Identity, error)
	EnsureFederatedCredentialFunc func(ctx context.Context, resourceGroup, identity string, cred FederatedCredential) (bool, error)

	EnsureStorageAccountFunc    func(ctx context.Context, opts StorageAccountOpts) (*StorageAccount, error)
	CheckStorageAccountNameFunc func(ctx context.Context, name string) (bool, string, error)
	EnsureBlobContainerFunc     func(ctx context.Context, resourceGroup, account, name string) (bool, error)
	EnsureFileShareFunc         func(ctx context.Context, resourceGroup, account, name string, quotaGiB int32) (bool, error)
	BlobExistsFunc              func(ctx context.Context, blobEndpoint, container, blob string) (bool, error)

	EnsureRoleAssignmentFunc func(ctx context.Context, scope, principalID string, role Role) (bool, error)

	EnsureClusterFunc         func(ctx context.Context, opts ClusterOpts) (*Cluster, error)
	GetClusterCredentialsFunc func(ctx context.Context, resourceGroup, name string) ([]byte, error)

	CheckAccessFunc func(ctx context.Context) error
}

// Ensure interface compliance
var _ Client = (*MockClient)(nil)

// SubscriptionID returns the configured subscription or a fixed test id.
func (m *MockClient) SubscriptionID() string {
	if m.Subscription != "" {
		return m.Subscription
	}
	return "00000000-0000-0000-0000-000000000000"
}

// CheckAccess mocks the credential check.
func (m *MockClient) CheckAccess(ctx context.Context) error {
	if m.CheckAccessFunc != nil {
		return m.CheckAccessFunc(ctx)
	}
	return nil
}

// EnsureResourceGroup mocks resource group creation.
func (m *MockClient) EnsureResourceGroup(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error) {
	if m.EnsureResourceGroupFunc != nil {
		return m.EnsureResourceGroupFunc(ctx, name, location, tags)
	}
	return &ResourceGroup{ID: ResourceGroupID(m.SubscriptionID(), name), Name: name, Location: location, Created: true}, nil
}

// ResourceGroupExists mocks the existence check.
func (m *MockClient) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	if m.ResourceGroupExistsFunc != nil {
		return m.ResourceGroupExistsFunc(ctx, name)
	}
	return false, nil
}

// DeleteResourceGroup mocks resource group deletion.
func (m *MockClient) DeleteResourceGroup(ctx context.Context, name string) error {
	if m.DeleteResourceGroupFunc != nil {
		return m.DeleteResourceGroupFunc(ctx, name)
	}
	return nil
}

// EnsureIdentity mocks managed identity creation.
func (m *MockClient) EnsureIdentity(ctx context.Context, resourceGroup, name, location string, tags map[string]string) (*Identity, error) {
	if m.EnsureIdentityFunc != nil {
		return m.EnsureIdentityFunc(ctx, resourceGroup, name, location, tags)
	}
	return &Identity{
		ID:          ResourceGroupID(m.SubscriptionID(), resourceGroup) + "/providers/Microsoft.ManagedIdentity/userAssignedIdentities/" + name,
		Name:        name,
		ClientID:    "11111111-1111-1111-1111-111111111111",
		PrincipalID: "22222222-2222-2222-2222-222222222222",
		Created:     true,
	}, nil
}

// EnsureFederatedCredential mocks federated credential creation.
func (m *MockClient) EnsureFederatedCredential(ctx context.Context, resourceGroup, identity string, cred FederatedCredential) (bool, error) {
	if m.EnsureFederatedCredentialFunc != nil {
		return m.EnsureFederatedCredentialFunc(ctx, resourceGroup, identity, cred)
	}
	return true, nil
}

// EnsureStorageAccount mocks storage account creation.
func (m *MockClient) EnsureStorageAccount(ctx context.Context, opts StorageAccountOpts) (*StorageAccount, error) {
	if m.EnsureStorageAccountFunc != nil {
		return m.EnsureStorageAccountFunc(ctx, opts)
	}
	return &StorageAccount{
		ID:                   ResourceGroupID(m.SubscriptionID(), opts.ResourceGroup) + "/providers/Microsoft.Storage/storageAccounts/" + opts.Name,
		Name:                 opts.Name,
		BlobEndpoint:         "https://" + opts.Name + ".blob.core.windows.net/",
		FileEndpoint:         "https://" + opts.Name + ".file.core.windows.net/",
		AllowSharedKeyAccess: opts.AllowSharedKeyAccess,
		Created:              true,
	}, nil
}

// CheckStorageAccountName mocks the name availability check.
func (m *MockClient) CheckStorageAccountName(ctx context.Context, name string) (bool, string, error) {
	if m.CheckStorageAccountNameFunc != nil {
		return m.CheckStorageAccountNameFunc(ctx, name)
	}
	return true, "", nil
}

// EnsureBlobContainer mocks blob container creation.
func (m *MockClient) EnsureBlobContainer(ctx context.Context, resourceGroup, account, name string) (bool, error) {
	if m.EnsureBlobContainerFunc != nil {
		return m.EnsureBlobContainerFunc(ctx, resourceGroup, account, name)
	}
	return true, nil
}

// EnsureFileShare mocks file share creation.
func (m *MockClient) EnsureFileShare(ctx context.Context, resourceGroup, account, name string, quotaGiB int32) (bool, error) {
	if m.EnsureFileShareFunc != nil {
		return m.EnsureFileShareFunc(ctx, resourceGroup, account, name, quotaGiB)
	}
	return true, nil
}

// BlobExists mocks the blob check.
func (m *MockClient) BlobExists(ctx context.Context, blobEndpoint, container, blob string) (bool, error) {
	if m.BlobExistsFunc != nil {
		return m.BlobExistsFunc(ctx, blobEndpoint, container, blob)
	}
	return true, nil
}

// EnsureRoleAssignment mocks role assignment.
func (m *MockClient) EnsureRoleAssignment(ctx context.Context, scope, principalID string, role Role) (bool, error) {
	if m.EnsureRoleAssignmentFunc != nil {
		return m.EnsureRoleAssignmentFunc(ctx, scope, principalID, role)
	}
	return true, nil
}

// EnsureCluster mocks AKS cluster creation.
func (m *MockClient) EnsureCluster(ctx context.Context, opts ClusterOpts) (*Cluster, error) {
	if m.EnsureClusterFunc != nil {
		return m.EnsureClusterFunc(ctx, opts)
	}
	return &Cluster{
		ID:                ResourceGroupID(m.SubscriptionID(), opts.ResourceGroup) + "/providers/Microsoft.ContainerService/managedClusters/" + opts.Name,
		Name:              opts.Name,
		FQDN:              opts.DNSPrefix + ".hcp." + opts.Location + ".azmk8s.io",
		OIDCIssuerURL:     "https://" + opts.Location + ".oic.prod-aks.azure.com/tenant/issuer/",
		NodeResourceGroup: opts.NodeResourceGroup,
		ProvisioningState: "Succeeded",
		Created:           true,
	}, nil
}

// GetClusterCredentials mocks kubeconfig retrieval.
func (m *MockClient) GetClusterCredentials(ctx context.Context, resourceGroup, name string) ([]byte, error) {
	if m.GetClusterCredentialsFunc != nil {
		return m.GetClusterCredentialsFunc(ctx, resourceGroup, name)
	}
	return []byte("apiVersion: v1\nkind: Config\n"), nil
}
