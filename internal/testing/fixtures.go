package testing

import (
	"context"
	"sync"

	"github.com/imamik/aks-storage/internal/platform/azure"
)

// AzureFixture provides a pre-configured mock Azure client for common test
// scenarios and records the calls made through it.
type AzureFixture struct {
	mock *azure.MockClient

	mu         sync.Mutex
	roles      []RoleCall
	containers []string
	shares     []string
	creds      []azure.FederatedCredential
	accounts   []azure.StorageAccountOpts
	clusters   []azure.ClusterOpts
}

// RoleCall records one EnsureRoleAssignment call.
type RoleCall struct {
	Scope       string
	PrincipalID string
	Role        azure.Role
}

// NewAzureFixture creates a new Azure fixture.
func NewAzureFixture() *AzureFixture {
	return &AzureFixture{
		mock: &azure.MockClient{},
	}
}

// Mock returns the underlying MockClient for custom configuration.
func (f *AzureFixture) Mock() *azure.MockClient {
	return f.mock
}

// SuccessfulProvisioning configures the mock to succeed everywhere while
// recording role assignments, containers, shares, credentials, storage
// accounts and clusters. Returns the same mock for chaining.
func (f *AzureFixture) SuccessfulProvisioning() *azure.MockClient {
	defaults := &azure.MockClient{Subscription: f.mock.Subscription}

	f.mock.EnsureRoleAssignmentFunc = func(_ context.Context, scope, principalID string, role azure.Role) (bool, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.roles = append(f.roles, RoleCall{Scope: scope, PrincipalID: principalID, Role: role})
		return true, nil
	}
	f.mock.EnsureBlobContainerFunc = func(_ context.Context, _, _, name string) (bool, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.containers = append(f.containers, name)
		return true, nil
	}
	f.mock.EnsureFileShareFunc = func(_ context.Context, _, _, name string, _ int32) (bool, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.shares = append(f.shares, name)
		return true, nil
	}
	f.mock.EnsureFederatedCredentialFunc = func(_ context.Context, _, _ string, cred azure.FederatedCredential) (bool, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.creds = append(f.creds, cred)
		return true, nil
	}
	f.mock.EnsureStorageAccountFunc = func(ctx context.Context, opts azure.StorageAccountOpts) (*azure.StorageAccount, error) {
		f.mu.Lock()
		f.accounts = append(f.accounts, opts)
		f.mu.Unlock()
		return defaults.EnsureStorageAccount(ctx, opts)
	}
	f.mock.EnsureClusterFunc = func(ctx context.Context, opts azure.ClusterOpts) (*azure.Cluster, error) {
		f.mu.Lock()
		f.clusters = append(f.clusters, opts)
		f.mu.Unlock()
		return defaults.EnsureCluster(ctx, opts)
	}
	return f.mock
}

// WithRoleAssignmentError makes every role assignment fail with err.
func (f *AzureFixture) WithRoleAssignmentError(err error) *azure.MockClient {
	f.mock.EnsureRoleAssignmentFunc = func(context.Context, string, string, azure.Role) (bool, error) {
		return false, err
	}
	return f.mock
}

// WithClusterError makes cluster creation fail with err.
func (f *AzureFixture) WithClusterError(err error) *azure.MockClient {
	f.mock.EnsureClusterFunc = func(context.Context, azure.ClusterOpts) (*azure.Cluster, error) {
		return nil, err
	}
	return f.mock
}

// Roles returns the recorded role assignment calls.
func (f *AzureFixture) Roles() []RoleCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RoleCall(nil), f.roles...)
}

// Containers returns the recorded blob container names.
func (f *AzureFixture) Containers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.containers...)
}

// Shares returns the recorded file share names.
func (f *AzureFixture) Shares() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.shares...)
}

// FederatedCredentials returns the recorded federated credentials.
func (f *AzureFixture) FederatedCredentials() []azure.FederatedCredential {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]azure.FederatedCredential(nil), f.creds...)
}

// StorageAccounts returns the recorded storage account requests.
func (f *AzureFixture) StorageAccounts() []azure.StorageAccountOpts {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]azure.StorageAccountOpts(nil), f.accounts...)
}

// Clusters returns the recorded cluster requests.
func (f *AzureFixture) Clusters() []azure.ClusterOpts {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]azure.ClusterOpts(nil), f.clusters...)
}
