package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/aks-storage/internal/config"
)

// fileConfig mirrors the flat keys accepted by --config.
type fileConfig struct {
	Group            string `yaml:"group"`
	Location         string `yaml:"location"`
	Storage          string `yaml:"storage,omitempty"`
	Provision        string `yaml:"provision,omitempty"`
	DisableSharedKey bool   `yaml:"disable-shared-key,omitempty"`
}

// WriteConfig writes the answers to a YAML file with a descriptive header.
func WriteConfig(r *WizardResult, outputPath string) error {
	out, err := yaml.Marshal(fileConfig{
		Group:            r.Group,
		Location:         r.Location,
		Storage:          r.Storage,
		Provision:        r.Provision,
		DisableSharedKey: r.DisableSharedKey,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(r, outputPath))
	sb.WriteString("\n")
	sb.Write(out)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(r *WizardResult, outputPath string) string {
	var cases []string
	for _, uc := range r.UseCases() {
		cases = append(cases, "#   "+uc.String())
	}
	return fmt.Sprintf(`# aks-storage configuration
# Generated at: %s
#
# Selected use cases:
%s
#
# Usage:
#   aks-storage run --config %s
#
# Every key can be overridden with a flag or an %s_* environment variable.
`, time.Now().Format(time.RFC3339), strings.Join(cases, "\n"), outputPath, config.EnvPrefix)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
