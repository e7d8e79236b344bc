package infrastructure

import (
	"github.com/imamik/aks-storage/internal/provisioning"
)

const phase = "infrastructure"

// Provisioner handles infrastructure provisioning (resource group, identity, storage account).
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Resource group
	if err := p.ProvisionResourceGroup(ctx); err != nil {
		return err
	}

	// 2. Managed identity
	if err := p.ProvisionIdentity(ctx); err != nil {
		return err
	}

	// 3. Storage account (static use cases only)
	return p.ProvisionStorageAccount(ctx)
}
