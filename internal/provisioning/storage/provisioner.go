package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/provisioning"
)

const phase = "storage"

// FileShareQuotaGiB is the quota of statically provisioned file shares.
const FileShareQuotaGiB int32 = 100

var errNotReady = errors.New("cluster and identity must be provisioned before storage")

// Provisioner prepares storage and workloads for every selected use case.
type Provisioner struct{}

// NewProvisioner creates a new storage provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. Per-case failures
// are recorded in the state; only cancellation and missing prerequisites
// fail the phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Identity == nil || ctx.State.Cluster == nil || ctx.State.Kube == nil {
		return errNotReady
	}

	grants := newGrantSet()
	cases := ctx.Config.UseCases()
	for i, uc := range cases {
		if err := ctx.Err(); err != nil {
			return err
		}
		ctx.Observer.Printf("[%s] Preparing %s (%d/%d)", phase, uc, i+1, len(cases))

		start := time.Now()
		if err := p.provisionCase(ctx, uc, grants); err != nil {
			ctx.State.RecordFailure(uc, provisioning.StageStorage, err, time.Since(start), ctx.Config.Keyless(uc))
			ctx.Observer.Printf("[%s] %s failed: %v", phase, uc, err)
			continue
		}
		ctx.Observer.Printf("[%s] %s ready in %s", phase, uc, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func (p *Provisioner) provisionCase(ctx *provisioning.Context, uc config.UseCase, grants *grantSet) error {
	if uc.IsStatic() {
		if err := ensureBackingStore(ctx, uc); err != nil {
			return err
		}
	}
	if err := assignRoles(ctx, uc, grants); err != nil {
		return err
	}
	if err := applyManifests(ctx, uc); err != nil {
		return fmt.Errorf("failed to apply manifests: %w", err)
	}
	return nil
}
