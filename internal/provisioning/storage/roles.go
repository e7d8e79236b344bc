package storage

import (
	"fmt"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/platform/azure"
	"github.com/imamik/aks-storage/internal/provisioning"
)

type grant struct {
	scope string
	role  azure.Role
}

// grantSet remembers the assignments made during one phase run so shared
// grants are requested once.
type grantSet struct {
	done map[grant]bool
}

func newGrantSet() *grantSet {
	return &grantSet{done: make(map[grant]bool)}
}

// requiredGrants lists the role assignments uc needs.
func requiredGrants(ctx *provisioning.Context, uc config.UseCase) []grant {
	var grants []grant
	if uc.IsStatic() && ctx.State.StorageAccount != nil {
		scope := ctx.State.StorageAccount.ID
		grants = append(grants,
			grant{scope: scope, role: azure.RoleStorageAccountKeyOperator},
			grant{scope: scope, role: dataRole(uc.Storage)},
		)
	}
	return append(grants, grant{scope: ctx.State.NodeResourceGroupID, role: azure.RoleReader})
}

func dataRole(s config.StorageType) azure.Role {
	if s == config.StorageFile {
		return azure.RoleStorageFileDataSMBShareContributor
	}
	return azure.RoleStorageBlobDataContributor
}

func assignRoles(ctx *provisioning.Context, uc config.UseCase, grants *grantSet) error {
	principal := ctx.State.Identity.PrincipalID
	for _, g := range requiredGrants(ctx, uc) {
		if grants.done[g] {
			continue
		}
		if g.scope == "" {
			return fmt.Errorf("no scope for role %q", g.role.Name)
		}

		created, err := ctx.Azure.EnsureRoleAssignment(ctx, g.scope, principal, g.role)
		if err != nil {
			provisioning.LogResourceFailed(ctx.Observer, phase, "role assignment", g.role.Name, err)
			return fmt.Errorf("failed to assign role %q: %w", g.role.Name, err)
		}
		grants.done[g] = true

		ctx.Metrics.RecordResource("role assignment", created)
		provisioning.LogResourceEnsured(ctx.Observer, phase, "role assignment", g.role.Name, g.scope, created)
	}
	return nil
}
