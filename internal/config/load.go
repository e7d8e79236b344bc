package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "AKS_STORAGE"

// Configuration keys. They double as flag names and as keys of the
// optional YAML configuration file.
const (
	KeyGroup              = "group"
	KeyID                 = "id"
	KeyLocation           = "location"
	KeySubscription       = "subscription"
	KeyStorage            = "storage"
	KeyProvision          = "provision"
	KeyDisableSharedKey   = "disable-shared-key"
	KeyNodeCount          = "node-count"
	KeyNodeVMSize         = "node-vm-size"
	KeyKubernetesVersion  = "kubernetes-version"
	KeyNamespace          = "namespace"
	KeyServiceAccount     = "service-account"
	KeyContainerName      = "container-name"
	KeyShareName          = "share-name"
	KeyTestImage          = "test-image"
	KeyVerifyBackingStore = "verify-backing-store"
	KeyKubeconfig         = "kubeconfig"
	KeyStateFile          = "state-file"
	KeyMetricsFile        = "metrics-file"
	KeySSHKeyDir          = "ssh-key-dir"
)

// NewViper returns a viper instance with defaults and environment binding.
// Flags bound with BindPFlags take precedence over the environment, which
// takes precedence over the config file.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault(KeyGroup, d.Group)
	v.SetDefault(KeyLocation, d.Location)
	v.SetDefault(KeyNodeCount, d.Cluster.NodeCount)
	v.SetDefault(KeyNodeVMSize, d.Cluster.NodeVMSize)
	v.SetDefault(KeyNamespace, d.Kubernetes.Namespace)
	v.SetDefault(KeyServiceAccount, d.Kubernetes.ServiceAccount)
	v.SetDefault(KeyContainerName, d.Kubernetes.ContainerName)
	v.SetDefault(KeyShareName, d.Kubernetes.ShareName)
	v.SetDefault(KeyTestImage, d.Kubernetes.TestImage)
	v.SetDefault(KeyVerifyBackingStore, d.Validation.VerifyBackingStore)
	v.SetDefault(KeyKubeconfig, d.Output.Kubeconfig)
	v.SetDefault(KeyStateFile, d.Output.StateFile)

	// AZURE_SUBSCRIPTION_ID is the variable azidentity users already export.
	_ = v.BindEnv(KeySubscription, EnvPrefix+"_SUBSCRIPTION", "AZURE_SUBSCRIPTION_ID")
	return v
}

// ReadConfigFile merges a YAML configuration file into v.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from v, applies the shared key policy and validates it.
func Load(v *viper.Viper) (*Config, error) {
	storage, err := ParseStorageType(v.GetString(KeyStorage))
	if err != nil {
		return nil, err
	}
	provision, err := ParseProvisionType(v.GetString(KeyProvision))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Group:            strings.ToLower(v.GetString(KeyGroup)),
		ID:               strings.ToLower(v.GetString(KeyID)),
		Location:         v.GetString(KeyLocation),
		SubscriptionID:   v.GetString(KeySubscription),
		Storage:          storage,
		Provision:        provision,
		DisableSharedKey: v.GetBool(KeyDisableSharedKey),
		Cluster: ClusterConfig{
			NodeCount:         v.GetInt(KeyNodeCount),
			NodeVMSize:        v.GetString(KeyNodeVMSize),
			KubernetesVersion: v.GetString(KeyKubernetesVersion),
		},
		Kubernetes: KubernetesConfig{
			Namespace:      v.GetString(KeyNamespace),
			ServiceAccount: v.GetString(KeyServiceAccount),
			ContainerName:  v.GetString(KeyContainerName),
			ShareName:      v.GetString(KeyShareName),
			TestImage:      v.GetString(KeyTestImage),
		},
		Validation: ValidationConfig{
			VerifyBackingStore: v.GetBool(KeyVerifyBackingStore),
		},
		Output: OutputConfig{
			Kubeconfig:  v.GetString(KeyKubeconfig),
			StateFile:   v.GetString(KeyStateFile),
			MetricsFile: v.GetString(KeyMetricsFile),
			SSHKeyDir:   v.GetString(KeySSHKeyDir),
		},
	}

	if err := cfg.ApplySharedKeyPolicy(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
