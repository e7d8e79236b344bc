package storage

import (
	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/manifests"
	"github.com/imamik/aks-storage/internal/provisioning"
)

// applyManifests renders the volume and workload objects of uc and applies
// them to the cluster.
func applyManifests(ctx *provisioning.Context, uc config.UseCase) error {
	data := manifests.NewData(ctx.Config, uc, ctx.State.Identity.ClientID, ctx.Timeouts.JobTimeout(uc))
	rendered, err := manifests.Render(data)
	if err != nil {
		return err
	}

	results, err := ctx.State.Kube.ApplyManifests(ctx, rendered)
	if err != nil {
		return err
	}
	for _, r := range results {
		ctx.Observer.Printf("[%s] %s %s", phase, r, r.Action)
	}
	return nil
}
