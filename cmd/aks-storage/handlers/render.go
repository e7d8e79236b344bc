package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/viper"
	k8syaml "k8s.io/apimachinery/pkg/util/yaml"
	"sigs.k8s.io/yaml"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/manifests"
)

// PlaceholderClientID stands in for the identity client id when rendering
// without a provisioned identity.
const PlaceholderClientID = "00000000-0000-0000-0000-000000000000"

// Output formats of the render command.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// RenderOptions holds the render flags.
type RenderOptions struct {
	GlobalOptions

	// ClientID is written into the service account and volume attributes.
	ClientID string
	// Format is yaml or json. JSON output is a single v1 List.
	Format string
}

// Render prints the manifests of the selected use cases without touching
// Azure or the cluster.
func Render(_ context.Context, v *viper.Viper, opts RenderOptions) error {
	cfg, err := loadConfig(v, opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureID(); err != nil {
		return fmt.Errorf("failed to generate run id: %w", err)
	}

	clientID := opts.ClientID
	if clientID == "" {
		clientID = PlaceholderClientID
	}

	out, err := manifests.RenderAll(cfg, clientID, config.LoadTimeouts())
	if err != nil {
		return fmt.Errorf("failed to render manifests: %w", err)
	}

	switch opts.Format {
	case "", FormatYAML:
	case FormatJSON:
		if out, err = manifestsToList(out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %q (use %s or %s)", opts.Format, FormatYAML, FormatJSON)
	}

	_, err = stdout.Write(out)
	return err
}

// manifestsToList converts multi-document YAML into an indented v1 List.
func manifestsToList(manifests []byte) ([]byte, error) {
	reader := k8syaml.NewYAMLReader(bufio.NewReader(bytes.NewReader(manifests)))

	items := []json.RawMessage{}
	for {
		doc, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest document: %w", err)
		}
		item, err := yaml.YAMLToJSON(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert manifest to JSON: %w", err)
		}
		if len(bytes.TrimSpace(item)) == 0 || bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		items = append(items, item)
	}

	list := struct {
		APIVersion string            `json:"apiVersion"`
		Kind       string            `json:"kind"`
		Items      []json.RawMessage `json:"items"`
	}{APIVersion: "v1", Kind: "List", Items: items}

	out, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest list: %w", err)
	}
	return append(out, '\n'), nil
}
