package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RunState records the resources a run created. It is written after the
// names are derived and updated as phases complete, so destroy can find a
// partially provisioned run.
type RunState struct {
	Group          string   `yaml:"group"`
	ID             string   `yaml:"id"`
	SubscriptionID string   `yaml:"subscriptionId"`
	Location       string   `yaml:"location"`
	UseCases       []string `yaml:"useCases"`
	SharedKey      bool     `yaml:"sharedKeyAccess"`

	ResourceGroup     string `yaml:"resourceGroup"`
	StorageAccount    string `yaml:"storageAccount,omitempty"`
	Identity          string `yaml:"identity"`
	IdentityClientID  string `yaml:"identityClientId,omitempty"`
	Cluster           string `yaml:"cluster"`
	NodeResourceGroup string `yaml:"nodeResourceGroup,omitempty"`
	OIDCIssuerURL     string `yaml:"oidcIssuerUrl,omitempty"`
	Kubeconfig        string `yaml:"kubeconfig,omitempty"`

	CreatedAt time.Time `yaml:"createdAt"`
	UpdatedAt time.Time `yaml:"updatedAt"`
}

// NewRunState seeds a RunState from the configuration.
func NewRunState(cfg *Config, subscriptionID string) *RunState {
	names := cfg.Names()
	cases := cfg.UseCases()
	useCases := make([]string, 0, len(cases))
	for _, uc := range cases {
		useCases = append(useCases, uc.Slug())
	}
	now := time.Now().UTC()
	return &RunState{
		Group:          cfg.Group,
		ID:             cfg.ID,
		SubscriptionID: subscriptionID,
		Location:       cfg.Location,
		UseCases:       useCases,
		SharedKey:      cfg.AllowSharedKeyAccess(),
		ResourceGroup:  names.ResourceGroup,
		Identity:       names.Identity,
		Cluster:        names.Cluster,
		Kubeconfig:     cfg.Output.Kubeconfig,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// LoadState reads a run state file.
func LoadState(path string) (*RunState, error) {
	// #nosec G304 - path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("state file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state RunState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	if state.ResourceGroup == "" {
		return nil, fmt.Errorf("state file %s has no resource group", path)
	}
	return &state, nil
}

// SaveState writes the run state with owner-only permissions.
func SaveState(path string, state *RunState) error {
	state.UpdatedAt = time.Now().UTC()
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
