package config

import (
	"fmt"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/imamik/aks-storage/internal/util/naming"
)

var (
	groupPattern          = regexp.MustCompile(`^[a-z]([a-z0-9-]*[a-z0-9])?$`)
	idPattern             = regexp.MustCompile(`^[a-z0-9]{1,12}$`)
	storageAccountPattern = regexp.MustCompile(`^[a-z0-9]{3,24}$`)
)

// Validate checks the configuration for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if c.Group == "" {
		return fmt.Errorf("group is required")
	}
	if !groupPattern.MatchString(c.Group) {
		return fmt.Errorf("invalid group %q: use lowercase letters, digits and dashes, starting with a letter", c.Group)
	}
	if c.ID != "" && !idPattern.MatchString(c.ID) {
		return fmt.Errorf("invalid id %q: use 1-12 lowercase letters or digits", c.ID)
	}
	if c.Location == "" {
		return fmt.Errorf("location is required")
	}

	if err := c.validateSelection(); err != nil {
		return fmt.Errorf("use case selection invalid: %w", err)
	}

	if err := c.validateNames(); err != nil {
		return fmt.Errorf("resource naming invalid: %w", err)
	}

	if err := c.validateCluster(); err != nil {
		return fmt.Errorf("cluster validation failed: %w", err)
	}

	if err := c.validateKubernetes(); err != nil {
		return fmt.Errorf("kubernetes validation failed: %w", err)
	}

	return nil
}

func (c *Config) validateSelection() error {
	if _, err := ParseStorageType(string(c.Storage)); err != nil {
		return err
	}
	if _, err := ParseProvisionType(string(c.Provision)); err != nil {
		return err
	}
	if c.DisableSharedKey {
		for _, uc := range c.UseCases() {
			if !uc.KeylessCandidate() {
				return fmt.Errorf("shared key access can only be disabled for %s/%s, but %s is selected",
					StorageBlob, ProvisionPersistent, uc)
			}
		}
	}
	if len(c.UseCases()) == 0 {
		return fmt.Errorf("no use case matches storage=%q provision=%q", c.Storage, c.Provision)
	}
	return nil
}

func (c *Config) validateNames() error {
	if c.ID == "" {
		return nil
	}
	account := naming.StorageAccount(c.Group, c.ID)
	if !storageAccountPattern.MatchString(account) {
		return fmt.Errorf("derived storage account name %q must be %d-%d lowercase letters or digits",
			account, naming.MinStorageAccountLength, naming.MaxStorageAccountLength)
	}
	if n := len(naming.Cluster(c.Group, c.ID)); n > 63 {
		return fmt.Errorf("derived cluster name is %d characters, the limit is 63", n)
	}
	return nil
}

func (c *Config) validateCluster() error {
	if c.Cluster.NodeCount < 1 {
		return fmt.Errorf("node count must be at least 1, got %d", c.Cluster.NodeCount)
	}
	if c.Cluster.NodeVMSize == "" {
		return fmt.Errorf("node VM size is required")
	}
	return nil
}

func (c *Config) validateKubernetes() error {
	k := c.Kubernetes
	for field, value := range map[string]string{
		"namespace":       k.Namespace,
		"service account": k.ServiceAccount,
		"container name":  k.ContainerName,
		"share name":      k.ShareName,
	} {
		if errs := validation.IsDNS1123Label(value); len(errs) > 0 {
			return fmt.Errorf("invalid %s %q: %s", field, value, strings.Join(errs, "; "))
		}
	}
	if k.TestImage == "" {
		return fmt.Errorf("test image is required")
	}
	return nil
}
