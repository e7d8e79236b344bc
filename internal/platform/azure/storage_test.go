package azure

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/stretchr/testify/assert"

	"github.com/imamik/aks-storage/internal/util/ptr"
)

func TestStorageAccountParameters(t *testing.T) {
	t.Parallel()

	params := storageAccountParameters(StorageAccountOpts{
		ResourceGroup:        "rg",
		Name:                 "akspocab12cdsa",
		Location:             "centralus",
		AllowSharedKeyAccess: false,
		Tags:                 map[string]string{"KeyAccess": "disabled"},
	})

	assert.Equal(t, armstorage.KindStorageV2, *params.Kind)
	assert.Equal(t, armstorage.SKUNameStandardLRS, *params.SKU.Name)
	assert.Equal(t, "centralus", *params.Location)
	assert.False(t, *params.Properties.AllowBlobPublicAccess)
	assert.False(t, *params.Properties.AllowSharedKeyAccess)
	assert.True(t, *params.Properties.EnableHTTPSTrafficOnly)
	assert.Equal(t, armstorage.MinimumTLSVersionTLS12, *params.Properties.MinimumTLSVersion)
	assert.Equal(t, "disabled", *params.Tags["KeyAccess"])
}

func TestStorageAccountFromARM(t *testing.T) {
	t.Parallel()

	t.Run("endpoints from properties", func(t *testing.T) {
		t.Parallel()
		sa := storageAccountFromARM("sa", armstorage.Account{
			ID:   ptr.To("/id"),
			Name: ptr.To("sa"),
			Properties: &armstorage.AccountProperties{
				AllowSharedKeyAccess: ptr.To(false),
				PrimaryEndpoints: &armstorage.Endpoints{
					Blob: ptr.To("https://sa.blob.core.usgovcloudapi.net/"),
					File: ptr.To("https://sa.file.core.usgovcloudapi.net/"),
				},
			},
		}, true)
		assert.Equal(t, "/id", sa.ID)
		assert.False(t, sa.AllowSharedKeyAccess)
		assert.Equal(t, "https://sa.blob.core.usgovcloudapi.net/", sa.BlobEndpoint)
		assert.Equal(t, "https://sa.file.core.usgovcloudapi.net/", sa.FileEndpoint)
		assert.True(t, sa.Created)
	})

	t.Run("defaults when properties are missing", func(t *testing.T) {
		t.Parallel()
		sa := storageAccountFromARM("sa", armstorage.Account{}, false)
		assert.Equal(t, "sa", sa.Name)
		assert.True(t, sa.AllowSharedKeyAccess, "shared key access is on unless disabled")
		assert.Equal(t, "https://sa.blob.core.windows.net/", sa.BlobEndpoint)
		assert.Equal(t, "https://sa.file.core.windows.net/", sa.FileEndpoint)
	})
}
