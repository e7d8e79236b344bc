package config

import (
	"fmt"

	"github.com/imamik/aks-storage/internal/util/labels"
	"github.com/imamik/aks-storage/internal/util/naming"
)

// Config is the complete configuration of a run.
type Config struct {
	// Group prefixes every Azure resource name.
	Group string `yaml:"group"`
	// ID is the unique run id appended to the group. Generated when empty.
	ID             string `yaml:"id"`
	Location       string `yaml:"location"`
	SubscriptionID string `yaml:"subscriptionId"`

	// Storage and Provision select the use cases. Empty means all values.
	Storage   StorageType   `yaml:"storage"`
	Provision ProvisionType `yaml:"provision"`

	// DisableSharedKey turns off shared key access on the storage account.
	// It is only valid for the Blob/Persistent use case.
	DisableSharedKey bool `yaml:"disableSharedKey"`

	Cluster    ClusterConfig    `yaml:"cluster"`
	Kubernetes KubernetesConfig `yaml:"kubernetes"`
	Validation ValidationConfig `yaml:"validation"`
	Output     OutputConfig     `yaml:"output"`
}

// ClusterConfig holds the AKS cluster shape.
type ClusterConfig struct {
	NodeCount         int    `yaml:"nodeCount"`
	NodeVMSize        string `yaml:"nodeVmSize"`
	KubernetesVersion string `yaml:"kubernetesVersion"`
}

// KubernetesConfig holds the in-cluster object settings.
type KubernetesConfig struct {
	Namespace      string `yaml:"namespace"`
	ServiceAccount string `yaml:"serviceAccount"`
	ContainerName  string `yaml:"containerName"`
	ShareName      string `yaml:"shareName"`
	TestImage      string `yaml:"testImage"`
}

// ValidationConfig controls the validation phase.
type ValidationConfig struct {
	// VerifyBackingStore checks that the blob written through a static blob
	// volume exists in the storage container.
	VerifyBackingStore bool `yaml:"verifyBackingStore"`
}

// OutputConfig holds local file locations written by a run.
type OutputConfig struct {
	Kubeconfig  string `yaml:"kubeconfig"`
	StateFile   string `yaml:"stateFile"`
	MetricsFile string `yaml:"metricsFile"`
	SSHKeyDir   string `yaml:"sshKeyDir"`
}

// Names holds the Azure resource names derived for a run.
type Names struct {
	ResourceGroup       string
	StorageAccount      string
	Identity            string
	Cluster             string
	DNSPrefix           string
	FederatedCredential string
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		Group:    DefaultGroup,
		Location: DefaultLocation,
		Cluster: ClusterConfig{
			NodeCount:  DefaultNodeCount,
			NodeVMSize: DefaultNodeVMSize,
		},
		Kubernetes: KubernetesConfig{
			Namespace:      DefaultNamespace,
			ServiceAccount: DefaultServiceAccount,
			ContainerName:  DefaultContainerName,
			ShareName:      DefaultShareName,
			TestImage:      DefaultTestImage,
		},
		Validation: ValidationConfig{VerifyBackingStore: true},
		Output: OutputConfig{
			Kubeconfig: DefaultKubeconfig,
			StateFile:  DefaultStateFile,
		},
	}
}

// EnsureID generates a run id when none was given.
func (c *Config) EnsureID() error {
	if c.ID != "" {
		return nil
	}
	id, err := naming.RandomID(naming.IDLength)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// Names derives the Azure resource names from group and id.
func (c *Config) Names() Names {
	return Names{
		ResourceGroup:       naming.ResourceGroup(c.Group, c.ID),
		StorageAccount:      naming.StorageAccount(c.Group, c.ID),
		Identity:            naming.Identity(c.Group, c.ID),
		Cluster:             naming.Cluster(c.Group, c.ID),
		DNSPrefix:           naming.DNSPrefix(c.Group, c.ID),
		FederatedCredential: FederatedCredentialName,
	}
}

// UseCases returns the use cases selected by Storage and Provision.
func (c *Config) UseCases() []UseCase {
	return SelectUseCases(c.Storage, c.Provision)
}

// NeedsStorageAccount reports whether any selected use case is static.
// Dynamic volumes get their storage account from the CSI driver.
func (c *Config) NeedsStorageAccount() bool {
	for _, uc := range c.UseCases() {
		if uc.IsStatic() {
			return true
		}
	}
	return false
}

// HasStorage reports whether any selected use case uses storage type s.
func (c *Config) HasStorage(s StorageType) bool {
	for _, uc := range c.UseCases() {
		if uc.Storage == s {
			return true
		}
	}
	return false
}

// AllowSharedKeyAccess returns the storage account's shared key setting.
// Keys are disabled when requested and for a lone Blob/Persistent run;
// every other combination needs them (SMB mounts and dynamic provisioning
// authenticate with the account key).
func (c *Config) AllowSharedKeyAccess() bool {
	if c.DisableSharedKey {
		return false
	}
	cases := c.UseCases()
	return !(len(cases) == 1 && cases[0].KeylessCandidate())
}

// Keyless reports whether a use case runs without shared key access.
func (c *Config) Keyless(uc UseCase) bool {
	return uc.KeylessCandidate() && !c.AllowSharedKeyAccess()
}

// Tags returns the tags applied to the run's Azure resources.
func (c *Config) Tags() map[string]string {
	tb := labels.NewTagBuilder(c.Group, c.ID)
	for _, uc := range c.UseCases() {
		tb.WithUseCase(uc.Number, uc.Description())
	}
	return tb.WithKeyAccessDisabled(!c.AllowSharedKeyAccess()).Build()
}

// ServiceAccountSubject is the token subject trusted by the federated
// identity credential.
func (c *Config) ServiceAccountSubject() string {
	return fmt.Sprintf("system:serviceaccount:%s:%s", c.Kubernetes.Namespace, c.Kubernetes.ServiceAccount)
}

// ApplySharedKeyPolicy enforces the --disable-shared-key restrictions.
// Keyless access is only supported for Blob/Persistent: omitted selections
// are forced to those values and conflicting explicit ones are rejected.
func (c *Config) ApplySharedKeyPolicy() error {
	if !c.DisableSharedKey {
		return nil
	}
	if c.Storage != "" && c.Storage != StorageBlob {
		return fmt.Errorf("--disable-shared-key requires storage type %s, got %s", StorageBlob, c.Storage)
	}
	if c.Provision != "" && c.Provision != ProvisionPersistent {
		return fmt.Errorf("--disable-shared-key requires provision type %s, got %s", ProvisionPersistent, c.Provision)
	}
	c.Storage = StorageBlob
	c.Provision = ProvisionPersistent
	return nil
}
