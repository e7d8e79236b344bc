package cluster

import (
	"fmt"

	"github.com/imamik/aks-storage/internal/k8s"
	"github.com/imamik/aks-storage/internal/provisioning"
)

// ConfigureAccess fetches the user kubeconfig, merges it into the
// configured kubeconfig file and creates the cluster client.
func (p *Provisioner) ConfigureAccess(ctx *provisioning.Context) error {
	names := ctx.Config.Names()

	kubeconfig, err := ctx.Azure.GetClusterCredentials(ctx, names.ResourceGroup, names.Cluster)
	if err != nil {
		return fmt.Errorf("failed to get credentials for %s: %w", names.Cluster, err)
	}
	ctx.State.Kubeconfig = kubeconfig

	if path := ctx.Config.Output.Kubeconfig; path != "" {
		current, err := k8s.WriteKubeconfig(path, kubeconfig)
		if err != nil {
			return fmt.Errorf("failed to write kubeconfig: %w", err)
		}
		ctx.State.KubeContext = current
		if ctx.State.Run != nil {
			ctx.State.Run.Kubeconfig = path
		}
		ctx.Observer.Printf("[%s] Kubeconfig written to %s (context %q)", phase, path, current)
	}

	client, err := ctx.NewKubeClient(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	ctx.State.Kube = client
	return nil
}
