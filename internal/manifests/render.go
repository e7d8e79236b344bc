package manifests

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/imamik/aks-storage/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

const (
	serviceAccountDir = "serviceaccount"
	workloadDir       = "workload"
)

// RenderServiceAccount renders the workload identity service account.
func RenderServiceAccount(data ServiceAccountData) ([]byte, error) {
	if data.ClientID == "" {
		return nil, fmt.Errorf("service account %s needs an identity client id", data.ServiceAccount)
	}
	return readAndProcessManifests(serviceAccountDir, data)
}

// Render renders every object of one use case: the volume objects followed
// by the script ConfigMap, the creator Job and the reader Pod.
func Render(data Data) ([]byte, error) {
	if data.ClientID == "" {
		return nil, fmt.Errorf("use case %s needs an identity client id", data.UseCase)
	}

	volumes, err := readAndProcessManifests(data.UseCase.Slug(), data)
	if err != nil {
		return nil, err
	}
	workload, err := readAndProcessManifests(workloadDir, data)
	if err != nil {
		return nil, err
	}

	var combined bytes.Buffer
	appendYAML(&combined, string(volumes))
	appendYAML(&combined, string(workload))
	return combined.Bytes(), nil
}

// RenderAll renders the service account and every selected use case of cfg
// as one stream.
func RenderAll(cfg *config.Config, clientID string, timeouts *config.Timeouts) ([]byte, error) {
	sa, err := RenderServiceAccount(NewServiceAccountData(cfg, clientID))
	if err != nil {
		return nil, err
	}

	var combined bytes.Buffer
	appendYAML(&combined, string(sa))
	for _, uc := range cfg.UseCases() {
		out, err := Render(NewData(cfg, uc, clientID, timeouts.JobTimeout(uc)))
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", uc, err)
		}
		appendYAML(&combined, string(out))
	}
	return combined.Bytes(), nil
}

// readAndProcessManifests renders every YAML file in one template directory
// in name order and joins the results into a single stream.
func readAndProcessManifests(dir string, data any) ([]byte, error) {
	dirPath := path.Join("templates", dir)
	entries, err := templatesFS.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates at %s: %w", dirPath, err)
	}

	var combined bytes.Buffer
	for _, entry := range entries {
		if entry.IsDir() || !isManifestFile(entry.Name()) {
			continue
		}

		filePath := path.Join(dirPath, entry.Name())
		content, err := templatesFS.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", filePath, err)
		}

		processed, err := processTemplate(entry.Name(), content, data)
		if err != nil {
			return nil, err
		}
		appendYAML(&combined, processed)
	}

	if combined.Len() == 0 {
		return nil, fmt.Errorf("no YAML templates found in %s", dirPath)
	}
	return combined.Bytes(), nil
}

func isManifestFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// appendYAML appends a YAML document to the buffer with a separator.
func appendYAML(buffer *bytes.Buffer, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	if buffer.Len() > 0 {
		buffer.WriteString("\n---\n")
	}
	buffer.WriteString(content)
	buffer.WriteString("\n")
}

func processTemplate(name string, content []byte, data any) (string, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
