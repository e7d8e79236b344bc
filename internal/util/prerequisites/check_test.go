package prerequisites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTools(t *testing.T, present map[string]string) {
	t.Helper()
	origLook, origVersion := lookPath, versionOf
	t.Cleanup(func() {
		lookPath = origLook
		versionOf = origVersion
	})

	lookPath = func(name string) (string, error) {
		if p, ok := present[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}
	versionOf = func(_ context.Context, path string, _ []string) string {
		return "v1.0.0 (" + path + ")"
	}
}

func TestCheck_FoundAndMissing(t *testing.T) {
	stubTools(t, map[string]string{"kubectl": "/usr/bin/kubectl"})

	results := Check(context.Background(), []Tool{
		{Name: "kubectl"},
		{Name: "az", InstallURL: "https://example.com/az"},
	})

	require.Len(t, results.Results, 2)
	assert.True(t, results.Results[0].Found)
	assert.Equal(t, "/usr/bin/kubectl", results.Results[0].Path)
	assert.Equal(t, "v1.0.0 (/usr/bin/kubectl)", results.Results[0].Version)

	assert.False(t, results.Results[1].Found)
	require.Len(t, results.Missing, 1)
	assert.Equal(t, "az", results.Missing[0].Name)

	assert.False(t, results.HasErrors(), "optional tools never fail the check")
	assert.NoError(t, results.Error())
}

func TestCheck_RequiredMissing(t *testing.T) {
	stubTools(t, map[string]string{})

	results := Check(context.Background(), []Tool{
		{Name: "az", Required: true, InstallURL: "https://example.com/az"},
	})

	assert.True(t, results.HasErrors())
	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "az (https://example.com/az)")
}

func TestOptionalTools(t *testing.T) {
	t.Parallel()
	tools := OptionalTools()

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		assert.False(t, tool.Required, "%s should be optional", tool.Name)
		assert.NotEmpty(t, tool.InstallURL)
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"az", "kubectl", "kubelogin"}, names)
}

func TestToolVersion_NoArgs(t *testing.T) {
	t.Parallel()
	assert.Empty(t, toolVersion(context.Background(), "/bin/true", nil))
}
