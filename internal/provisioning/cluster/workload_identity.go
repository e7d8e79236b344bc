package cluster

import (
	"fmt"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/manifests"
	"github.com/imamik/aks-storage/internal/platform/azure"
	"github.com/imamik/aks-storage/internal/provisioning"
)

// ConfigureWorkloadIdentity applies the annotated service account and
// federates the managed identity with its tokens.
func (p *Provisioner) ConfigureWorkloadIdentity(ctx *provisioning.Context) error {
	cfg := ctx.Config
	identity := ctx.State.Identity

	sa, err := manifests.RenderServiceAccount(manifests.NewServiceAccountData(cfg, identity.ClientID))
	if err != nil {
		return err
	}
	results, err := ctx.State.Kube.ApplyManifests(ctx, sa)
	if err != nil {
		return fmt.Errorf("failed to apply service account %s: %w", cfg.Kubernetes.ServiceAccount, err)
	}
	for _, r := range results {
		ctx.Observer.Printf("[%s] %s %s", phase, r, r.Action)
	}

	cred := azure.FederatedCredential{
		Name:      cfg.Names().FederatedCredential,
		Issuer:    ctx.State.Cluster.OIDCIssuerURL,
		Subject:   cfg.ServiceAccountSubject(),
		Audiences: []string{config.TokenExchangeAudience},
	}
	created, err := ctx.Azure.EnsureFederatedCredential(ctx, cfg.Names().ResourceGroup, identity.Name, cred)
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "federated credential", cred.Name, err)
		return fmt.Errorf("failed to ensure federated credential %s: %w", cred.Name, err)
	}

	ctx.Metrics.RecordResource("federated credential", created)
	provisioning.LogResourceEnsured(ctx.Observer, phase, "federated credential", cred.Name, cred.Subject, created)
	return nil
}
