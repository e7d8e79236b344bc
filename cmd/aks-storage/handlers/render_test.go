package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/aks-storage/internal/config"
)

func stubStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := stdout
	t.Cleanup(func() { stdout = orig })
	var out bytes.Buffer
	stdout = &out
	return &out
}

func TestRender_YAML(t *testing.T) {
	out := stubStdout(t)
	v := config.NewViper()
	v.Set(config.KeyID, "abc123")
	v.Set(config.KeyStorage, "Blob")
	v.Set(config.KeyProvision, "Persistent")

	err := Render(context.Background(), v, RenderOptions{ClientID: "11111111-2222-3333-4444-555555555555"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "kind: ServiceAccount")
	assert.Contains(t, out.String(), "11111111-2222-3333-4444-555555555555")
	assert.Contains(t, out.String(), "static-blob-creator")
	assert.NotContains(t, out.String(), "dynamic-file-creator")
}

func TestRender_PlaceholderClientID(t *testing.T) {
	out := stubStdout(t)
	v := config.NewViper()
	v.Set(config.KeyID, "abc123")

	require.NoError(t, Render(context.Background(), v, RenderOptions{}))
	assert.Contains(t, out.String(), PlaceholderClientID)
}

func TestRender_JSONList(t *testing.T) {
	out := stubStdout(t)
	v := config.NewViper()
	v.Set(config.KeyID, "abc123")
	v.Set(config.KeyStorage, "File")
	v.Set(config.KeyProvision, "Dynamic")

	require.NoError(t, Render(context.Background(), v, RenderOptions{Format: FormatJSON}))

	var list struct {
		APIVersion string `json:"apiVersion"`
		Kind       string `json:"kind"`
		Items      []struct {
			Kind     string `json:"kind"`
			Metadata struct {
				Name string `json:"name"`
			} `json:"metadata"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	assert.Equal(t, "List", list.Kind)

	kinds := map[string]bool{}
	for _, item := range list.Items {
		kinds[item.Kind] = true
		assert.NotEmpty(t, item.Metadata.Name)
	}
	assert.True(t, kinds["ServiceAccount"])
	assert.True(t, kinds["StorageClass"])
	assert.True(t, kinds["Job"])
}

func TestRender_UnknownFormat(t *testing.T) {
	stubStdout(t)
	v := config.NewViper()
	v.Set(config.KeyID, "abc123")

	err := Render(context.Background(), v, RenderOptions{Format: "toml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestManifestsToList_SkipsEmptyDocuments(t *testing.T) {
	in := []byte("---\n# comment\n---\napiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: a\n---\n")

	out, err := manifestsToList(in)
	require.NoError(t, err)

	var list struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(out, &list))
	assert.Len(t, list.Items, 1)
}
