package azure

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v3"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/util/ptr"
)

// managementScope is the token scope for Azure Resource Manager.
const managementScope = "https://management.azure.com/.default"

// RealClient implements Client using the Azure SDK.
type RealClient struct {
	subscriptionID string
	credential     azcore.TokenCredential
	timeouts       *config.Timeouts
	logger         *zap.Logger
	blobOptions    *azblob.ClientOptions

	resourceGroups       *armresources.ResourceGroupsClient
	identities           *armmsi.UserAssignedIdentitiesClient
	federatedCredentials *armmsi.FederatedIdentityCredentialsClient
	roleAssignments      *armauthorization.RoleAssignmentsClient
	accounts             *armstorage.AccountsClient
	containers           *armstorage.BlobContainersClient
	shares               *armstorage.FileSharesClient
	clusters             *armcontainerservice.ManagedClustersClient
}

var _ Client = (*RealClient)(nil)

type clientSettings struct {
	credential  azcore.TokenCredential
	timeouts    *config.Timeouts
	logger      *zap.Logger
	armOptions  *arm.ClientOptions
	blobOptions *azblob.ClientOptions
}

// ClientOption configures a RealClient.
type ClientOption func(*clientSettings)

// WithCredential sets the token credential. DefaultAzureCredential is used otherwise.
func WithCredential(cred azcore.TokenCredential) ClientOption {
	return func(s *clientSettings) {
		s.credential = cred
	}
}

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(s *clientSettings) {
		s.timeouts = t
	}
}

// WithLogger sets the logger used for retry messages.
func WithLogger(l *zap.Logger) ClientOption {
	return func(s *clientSettings) {
		s.logger = l
	}
}

// WithARMOptions sets the options passed to every ARM client (useful for testing).
func WithARMOptions(o *arm.ClientOptions) ClientOption {
	return func(s *clientSettings) {
		s.armOptions = o
	}
}

// WithBlobOptions sets the options for data plane blob clients.
func WithBlobOptions(o *azblob.ClientOptions) ClientOption {
	return func(s *clientSettings) {
		s.blobOptions = o
	}
}

// NewRealClient creates a RealClient. An empty subscriptionID is resolved
// from the subscriptions visible to the credential.
func NewRealClient(ctx context.Context, subscriptionID string, opts ...ClientOption) (*RealClient, error) {
	s := &clientSettings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.timeouts == nil {
		s.timeouts = config.LoadTimeouts()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.credential == nil {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure credential: %w", err)
		}
		s.credential = cred
	}

	if subscriptionID == "" {
		sub, err := ResolveSubscription(ctx, s.credential, s.armOptions)
		if err != nil {
			return nil, err
		}
		subscriptionID = sub
	}

	c := &RealClient{
		subscriptionID: subscriptionID,
		credential:     s.credential,
		timeouts:       s.timeouts,
		logger:         s.logger,
		blobOptions:    s.blobOptions,
	}
	if err := c.initClients(s.armOptions); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *RealClient) initClients(o *arm.ClientOptions) error {
	var err error
	if c.resourceGroups, err = armresources.NewResourceGroupsClient(c.subscriptionID, c.credential, o); err != nil {
		return fmt.Errorf("failed to create resource groups client: %w", err)
	}
	if c.identities, err = armmsi.NewUserAssignedIdentitiesClient(c.subscriptionID, c.credential, o); err != nil {
		return fmt.Errorf("failed to create identities client: %w", err)
	}
	if c.federatedCredentials, err = armmsi.NewFederatedIdentityCredentialsClient(c.subscriptionID, c.credential, o); err != nil {
		return fmt.Errorf("failed to create federated credentials client: %w", err)
	}
	if c.roleAssignments, err = armauthorization.NewRoleAssignmentsClient(c.subscriptionID, c.credential, o); err != nil {
		return fmt.Errorf("failed to create role assignments client: %w", err)
	}
	if c.accounts, err = armstorage.NewAccountsClient(c.subscriptionID, c.credential, o); err != nil {
		return fmt.Errorf("failed to create storage accounts client: %w", err)
	}
	if c.containers, err = armstorage.NewBlobContainersClient(c.subscriptionID, c.credential, o); err != nil {
		return fmt.Errorf("failed to create blob containers client: %w", err)
	}
	if c.shares, err = armstorage.NewFileSharesClient(c.subscriptionID, c.credential, o); err != nil {
		return fmt.Errorf("failed to create file shares client: %w", err)
	}
	if c.clusters, err = armcontainerservice.NewManagedClustersClient(c.subscriptionID, c.credential, o); err != nil {
		return fmt.Errorf("failed to create managed clusters client: %w", err)
	}
	return nil
}

// SubscriptionID returns the subscription all resources are created in.
func (c *RealClient) SubscriptionID() string {
	return c.subscriptionID
}

// CheckAccess acquires a management token to prove the credential works.
func (c *RealClient) CheckAccess(ctx context.Context) error {
	_, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{managementScope}})
	if err != nil {
		return fmt.Errorf("failed to acquire Azure management token: %w", err)
	}
	return nil
}

// ResolveSubscription returns the only enabled subscription visible to cred.
// When several are visible the caller has to choose one explicitly.
func ResolveSubscription(ctx context.Context, cred azcore.TokenCredential, o *arm.ClientOptions) (string, error) {
	client, err := armsubscriptions.NewClient(cred, o)
	if err != nil {
		return "", fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	var enabled []string
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, sub := range page.Value {
			if sub == nil || sub.SubscriptionID == nil {
				continue
			}
			if ptr.Deref(sub.State, "") == armsubscriptions.SubscriptionStateEnabled {
				enabled = append(enabled, *sub.SubscriptionID)
			}
		}
	}

	switch len(enabled) {
	case 0:
		return "", fmt.Errorf("no enabled Azure subscription found; set --subscription or AZURE_SUBSCRIPTION_ID")
	case 1:
		return enabled[0], nil
	default:
		sort.Strings(enabled)
		return "", fmt.Errorf("multiple Azure subscriptions available (%s); set --subscription or AZURE_SUBSCRIPTION_ID",
			strings.Join(enabled, ", "))
	}
}

// ResourceGroupID returns the ARM id of a resource group.
func ResourceGroupID(subscriptionID, resourceGroup string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", subscriptionID, resourceGroup)
}
