package k8s

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes/fake"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: aks
  cluster:
    server: https://aks.hcp.centralus.azmk8s.io:443
contexts:
- name: aks
  context:
    cluster: aks
    user: clusterUser_rg_aks
current-context: aks
users:
- name: clusterUser_rg_aks
  user:
    token: secret
`

func TestNewFromKubeconfig(t *testing.T) {
	t.Parallel()
	c, err := NewFromKubeconfig([]byte(testKubeconfig))
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestNewFromKubeconfig_Invalid(t *testing.T) {
	t.Parallel()
	_, err := NewFromKubeconfig([]byte("invalid kubeconfig content"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create REST config")
}

func TestNewFromClients(t *testing.T) {
	t.Parallel()
	var c Client = NewFromClients(fake.NewClientset())
	assert.NotNil(t, c)
}

func TestApplyResult_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Job/default/static-blob-creator",
		ApplyResult{Kind: "Job", Namespace: "default", Name: "static-blob-creator"}.String())
	assert.Equal(t, "StorageClass/aks-storage-file",
		ApplyResult{Kind: "StorageClass", Name: "aks-storage-file"}.String())
}
