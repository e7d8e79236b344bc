package naming

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamingFunctions(t *testing.T) {
	t.Parallel()
	group := "aks-storage-poc"
	id := "ab12cd"

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{name: "ResourceGroup", got: ResourceGroup(group, id), expected: "aks-storage-poc-ab12cd-rg"},
		{name: "Identity", got: Identity(group, id), expected: "aks-storage-poc-ab12cd-identity"},
		{name: "Cluster", got: Cluster(group, id), expected: "aks-storage-poc-ab12cd-aks"},
		{name: "StorageAccount", got: StorageAccount(group, id), expected: "aksstoragepocab12cdsa"},
		{name: "DNSPrefix", got: DNSPrefix(group, id), expected: "aks-storage-poc-ab12cd"},
		{name: "CaseObject", got: CaseObject("static", "blob", "creator"), expected: "static-blob-creator"},
		{name: "NodeResourceGroup", got: NodeResourceGroup("rg", "aks", "centralus"), expected: "MC_rg_aks_centralus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestStorageAccount_Truncated(t *testing.T) {
	t.Parallel()
	name := StorageAccount("a-very-long-group-name-for-storage", "zz9999")

	assert.Len(t, name, MaxStorageAccountLength)
	assert.NotContains(t, name, "-")
	assert.True(t, strings.HasPrefix(name, "averylonggroupname"))
}

func TestStorageAccount_Lowercase(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "myteamabcdefsa", StorageAccount("My-Team", "abcdef"))
}

func TestDNSPrefix_Truncated(t *testing.T) {
	t.Parallel()
	prefix := DNSPrefix(strings.Repeat("g", 60), "abcdef")
	assert.LessOrEqual(t, len(prefix), 54)
}

func TestRandomID(t *testing.T) {
	t.Parallel()
	pattern := regexp.MustCompile(`^[a-z0-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, err := RandomID(IDLength)
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1, "ids should not repeat")
}

func TestRandomID_InvalidLength(t *testing.T) {
	t.Parallel()
	_, err := RandomID(0)
	assert.Error(t, err)
}
