package azure

import (
	"context"
)

// ResourceGroup is a provisioned resource group.
type ResourceGroup struct {
	ID       string
	Name     string
	Location string
	Created  bool
}

// Identity is a user-assigned managed identity.
type Identity struct {
	ID          string
	Name        string
	ClientID    string
	PrincipalID string
	TenantID    string
	Created     bool
}

// FederatedCredential trusts tokens issued for a Kubernetes service account.
type FederatedCredential struct {
	Name      string
	Issuer    string
	Subject   string
	Audiences []string
}

// StorageAccountOpts holds the parameters for creating a storage account.
type StorageAccountOpts struct {
	ResourceGroup        string
	Name                 string
	Location             string
	AllowSharedKeyAccess bool
	Tags                 map[string]string
}

// StorageAccount is a provisioned StorageV2 account.
type StorageAccount struct {
	ID                   string
	Name                 string
	BlobEndpoint         string
	FileEndpoint         string
	AllowSharedKeyAccess bool
	Created              bool
}

// ClusterOpts holds the parameters for creating an AKS cluster.
type ClusterOpts struct {
	ResourceGroup     string
	Name              string
	Location          string
	DNSPrefix         string
	NodeResourceGroup string
	KubernetesVersion string
	NodeCount         int32
	NodeVMSize        string
	SSHPublicKey      string
	BlobCSIDriver     bool
	FileCSIDriver     bool
	Tags              map[string]string
}

// Cluster is a provisioned AKS cluster.
type Cluster struct {
	ID                string
	Name              string
	FQDN              string
	OIDCIssuerURL     string
	NodeResourceGroup string
	ProvisioningState string
	Created           bool
}

// ResourceGroupManager manages resource groups.
type ResourceGroupManager interface {
	EnsureResourceGroup(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error)
	ResourceGroupExists(ctx context.Context, name string) (bool, error)
	// DeleteResourceGroup deletes the group and waits for completion.
	// A missing group is not an error.
	DeleteResourceGroup(ctx context.Context, name string) error
}

// IdentityManager manages user-assigned identities and their federated credentials.
type IdentityManager interface {
	EnsureIdentity(ctx context.Context, resourceGroup, name, location string, tags map[string]string) (*Identity, error)
	EnsureFederatedCredential(ctx context.Context, resourceGroup, identity string, cred FederatedCredential) (bool, error)
}

// StorageManager manages storage accounts, containers and shares.
type StorageManager interface {
	EnsureStorageAccount(ctx context.Context, opts StorageAccountOpts) (*StorageAccount, error)
	// CheckStorageAccountName reports global name availability and, when the
	// name is taken, the service's reason.
	CheckStorageAccountName(ctx context.Context, name string) (bool, string, error)
	EnsureBlobContainer(ctx context.Context, resourceGroup, account, name string) (bool, error)
	EnsureFileShare(ctx context.Context, resourceGroup, account, name string, quotaGiB int32) (bool, error)
	// BlobExists checks a blob through the data plane with the client's credential.
	BlobExists(ctx context.Context, blobEndpoint, container, blob string) (bool, error)
}

// RoleManager manages role assignments.
type RoleManager interface {
	// EnsureRoleAssignment grants role to principalID at scope. An existing
	// assignment counts as success and reports false.
	EnsureRoleAssignment(ctx context.Context, scope, principalID string, role Role) (bool, error)
}

// ClusterManager manages AKS clusters.
type ClusterManager interface {
	EnsureCluster(ctx context.Context, opts ClusterOpts) (*Cluster, error)
	GetClusterCredentials(ctx context.Context, resourceGroup, name string) ([]byte, error)
}

// Client combines every Azure operation a run needs.
type Client interface {
	ResourceGroupManager
	IdentityManager
	StorageManager
	RoleManager
	ClusterManager

	// SubscriptionID returns the subscription all resources are created in.
	SubscriptionID() string
	// CheckAccess verifies that a management token can be acquired.
	CheckAccess(ctx context.Context) error
}
