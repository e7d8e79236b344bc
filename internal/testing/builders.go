package testing

import (
	"github.com/imamik/aks-storage/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with defaults and a fixed run id.
func NewConfigBuilder() *ConfigBuilder {
	cfg := *config.Default()
	cfg.ID = "abc123"
	return &ConfigBuilder{cfg: cfg}
}

// WithGroup sets the group prefix.
func (b *ConfigBuilder) WithGroup(group string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Group = group
	return newBuilder
}

// WithID sets the run id.
func (b *ConfigBuilder) WithID(id string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.ID = id
	return newBuilder
}

// WithLocation sets the Azure region.
func (b *ConfigBuilder) WithLocation(location string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Location = location
	return newBuilder
}

// WithStorage selects a storage type.
func (b *ConfigBuilder) WithStorage(s config.StorageType) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Storage = s
	return newBuilder
}

// WithProvision selects a provision type.
func (b *ConfigBuilder) WithProvision(p config.ProvisionType) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Provision = p
	return newBuilder
}

// WithDisableSharedKey requests keyless storage access.
func (b *ConfigBuilder) WithDisableSharedKey() *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.DisableSharedKey = true
	return newBuilder
}

// WithVerifyBackingStore toggles the blob existence check.
func (b *ConfigBuilder) WithVerifyBackingStore(enabled bool) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Validation.VerifyBackingStore = enabled
	return newBuilder
}

// WithKubeconfig sets the kubeconfig output path.
func (b *ConfigBuilder) WithKubeconfig(path string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Output.Kubeconfig = path
	return newBuilder
}

// Build returns the constructed configuration.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg
	return &cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	return &ConfigBuilder{cfg: b.cfg}
}

// MinimalConfig returns a single use case (Blob/Persistent) configuration.
func MinimalConfig() *config.Config {
	return NewConfigBuilder().
		WithStorage(config.StorageBlob).
		WithProvision(config.ProvisionPersistent).
		Build()
}

// FullConfig returns a configuration selecting all four use cases.
func FullConfig() *config.Config {
	return NewConfigBuilder().Build()
}
