package cluster

import (
	"github.com/imamik/aks-storage/internal/provisioning"
	"github.com/imamik/aks-storage/internal/util/keygen"
)

const phase = "cluster"

// Provisioner handles the AKS cluster and workload identity setup.
type Provisioner struct {
	// KeyBits is the size of the generated node SSH key.
	KeyBits int
}

// NewProvisioner creates a new cluster provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{KeyBits: keygen.DefaultBits}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Identity == nil {
		return errMissingIdentity
	}

	if err := p.ProvisionCluster(ctx); err != nil {
		return err
	}
	if err := p.ConfigureAccess(ctx); err != nil {
		return err
	}
	return p.ConfigureWorkloadIdentity(ctx)
}
