package commands

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/imamik/aks-storage/internal/config"
)

// addSelectionFlags registers the flags that choose the use cases and
// derive resource names. They are shared by run and render.
func addSelectionFlags(fs *pflag.FlagSet) {
	fs.String(config.KeyGroup, config.DefaultGroup, "Resource name prefix")
	fs.String(config.KeyID, "", "Run id appended to resource names (generated when empty)")
	fs.String(config.KeyStorage, "", "Storage type: Blob or File (default: both)")
	fs.String(config.KeyProvision, "", "Provision type: Persistent or Dynamic (default: both)")
	fs.Bool(config.KeyDisableSharedKey, false, "Disable shared key access (Blob/Persistent only)")
	fs.String(config.KeyLocation, config.DefaultLocation, "Azure region")
	fs.String(config.KeyNamespace, config.DefaultNamespace, "Namespace of the test objects")
	fs.String(config.KeyTestImage, config.DefaultTestImage, "Image of the writer job and reader pod")
}

// addRunFlags registers the flags only a run needs.
func addRunFlags(fs *pflag.FlagSet) {
	fs.String(config.KeySubscription, "", "Azure subscription id (default: AZURE_SUBSCRIPTION_ID or the only enabled one)")
	fs.Int(config.KeyNodeCount, config.DefaultNodeCount, "Number of AKS system nodes")
	fs.String(config.KeyNodeVMSize, config.DefaultNodeVMSize, "VM size of the AKS nodes")
	fs.String(config.KeyKubernetesVersion, "", "Kubernetes version (default: AKS default)")
	fs.String(config.KeyKubeconfig, config.DefaultKubeconfig, "Kubeconfig file to write or merge into (empty to skip)")
	fs.String(config.KeyStateFile, config.DefaultStateFile, "Run state file used by destroy (empty to skip)")
	fs.String(config.KeyMetricsFile, "", "Write Prometheus metrics in text format to this file")
	fs.String(config.KeySSHKeyDir, "", "Save the generated node SSH key pair in this directory")
}

// bindFlags binds every flag of fs that names a configuration key.
// Flags take precedence over the environment and the config file.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// configKeys lists every key bound from flags.
var configKeys = []string{
	config.KeyGroup,
	config.KeyID,
	config.KeyStorage,
	config.KeyProvision,
	config.KeyDisableSharedKey,
	config.KeyLocation,
	config.KeyNamespace,
	config.KeyTestImage,
	config.KeySubscription,
	config.KeyNodeCount,
	config.KeyNodeVMSize,
	config.KeyKubernetesVersion,
	config.KeyKubeconfig,
	config.KeyStateFile,
	config.KeyMetricsFile,
	config.KeySSHKeyDir,
}

// newViper returns a viper instance with the command's flags bound.
func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := config.NewViper()
	if err := bindFlags(v, fs, configKeys...); err != nil {
		return nil, err
	}
	return v, nil
}
