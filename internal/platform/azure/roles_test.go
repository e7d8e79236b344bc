package azure

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleDefinitionID(t *testing.T) {
	t.Parallel()
	got := RoleDefinitionID("sub-1", RoleReader)
	assert.Equal(t, "/subscriptions/sub-1/providers/Microsoft.Authorization/roleDefinitions/acdd72a7-3385-48ef-bd42-f606fba81ae7", got)
}

func TestRoleAssignmentName(t *testing.T) {
	t.Parallel()

	scope := "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/sa"
	a := RoleAssignmentName(scope, "principal", RoleStorageBlobDataContributor)
	b := RoleAssignmentName(scope, "principal", RoleStorageBlobDataContributor)
	assert.Equal(t, a, b, "name must be stable across runs")

	_, err := uuid.Parse(a)
	require.NoError(t, err)

	assert.NotEqual(t, a, RoleAssignmentName(scope, "principal", RoleStorageAccountKeyOperator))
	assert.NotEqual(t, a, RoleAssignmentName(scope, "other", RoleStorageBlobDataContributor))
	assert.NotEqual(t, a, RoleAssignmentName("/subscriptions/sub/resourceGroups/rg", "principal", RoleStorageBlobDataContributor))
}

func TestBuiltInRoles(t *testing.T) {
	t.Parallel()
	for _, role := range []Role{
		RoleStorageBlobDataContributor,
		RoleStorageFileDataSMBShareContributor,
		RoleStorageAccountKeyOperator,
		RoleReader,
	} {
		_, err := uuid.Parse(role.DefinitionID)
		assert.NoError(t, err, role.Name)
		assert.NotEmpty(t, role.Name)
	}
}
