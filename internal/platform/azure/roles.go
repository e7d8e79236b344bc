package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/util/ptr"
	"github.com/imamik/aks-storage/internal/util/retry"
)

// Role is an Azure built-in role definition.
type Role struct {
	Name string
	// DefinitionID is the role definition GUID, identical in every subscription.
	DefinitionID string
}

// Built-in roles granted to the workload identity.
var (
	RoleStorageBlobDataContributor = Role{
		Name:         "Storage Blob Data Contributor",
		DefinitionID: "ba92f5b4-2d11-453d-a403-e96b0029c9fe",
	}
	RoleStorageFileDataSMBShareContributor = Role{
		Name:         "Storage File Data SMB Share Contributor",
		DefinitionID: "0c867c2a-1d8c-454a-a3db-ab2ea1bdc8bb",
	}
	RoleStorageAccountKeyOperator = Role{
		Name:         "Storage Account Key Operator Service Role",
		DefinitionID: "81a9662b-bebf-436f-a333-f67b29880f12",
	}
	RoleReader = Role{
		Name:         "Reader",
		DefinitionID: "acdd72a7-3385-48ef-bd42-f606fba81ae7",
	}
)

// principalPropagationRetries bounds how long a new identity may take to
// appear in Entra ID before role assignment gives up.
const principalPropagationRetries = 10

// RoleDefinitionID returns the subscription-scoped id of a role definition.
func RoleDefinitionID(subscriptionID string, role Role) string {
	return fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s", subscriptionID, role.DefinitionID)
}

// RoleAssignmentName derives a stable assignment name so repeated runs
// address the same assignment.
func RoleAssignmentName(scope, principalID string, role Role) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(scope+"|"+principalID+"|"+role.DefinitionID)).String()
}

// EnsureRoleAssignment grants role to a service principal at scope.
// RoleAssignmentExists and 409 conflicts count as success. A principal that
// has not replicated yet is retried with backoff.
func (c *RealClient) EnsureRoleAssignment(ctx context.Context, scope, principalID string, role Role) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.ResourceCreate)
	defer cancel()

	name := RoleAssignmentName(scope, principalID, role)
	params := armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			PrincipalID:      ptr.To(principalID),
			RoleDefinitionID: ptr.To(RoleDefinitionID(c.subscriptionID, role)),
			PrincipalType:    ptr.To(armauthorization.PrincipalTypeServicePrincipal),
		},
	}

	created := false
	err := retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.roleAssignments.Create(ctx, scope, name, params, nil)
		switch {
		case err == nil:
			created = true
			return nil
		case IsRoleAssignmentExists(err):
			return nil
		default:
			return err
		}
	},
		retry.WithMaxRetries(principalPropagationRetries),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithRetryable(func(err error) bool {
			return IsPrincipalNotFound(err) || IsRetryable(err)
		}),
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			c.logger.Debug("waiting to assign role",
				zap.String("role", role.Name),
				zap.String("scope", scope),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err))
		}))
	if err != nil {
		return false, fmt.Errorf("failed to assign role %q at %s: %w", role.Name, scope, err)
	}
	return created, nil
}
