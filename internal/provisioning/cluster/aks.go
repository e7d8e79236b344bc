package cluster

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/platform/azure"
	"github.com/imamik/aks-storage/internal/provisioning"
	"github.com/imamik/aks-storage/internal/util/keygen"
	"github.com/imamik/aks-storage/internal/util/naming"
)

var errMissingIdentity = errors.New("managed identity has not been provisioned")

// ProvisionCluster ensures the AKS cluster and records its OIDC issuer and
// node resource group.
func (p *Provisioner) ProvisionCluster(ctx *provisioning.Context) error {
	cfg := ctx.Config
	names := cfg.Names()

	key, err := p.nodeKey(ctx, names.Cluster)
	if err != nil {
		return err
	}

	opts := azure.ClusterOpts{
		ResourceGroup:     names.ResourceGroup,
		Name:              names.Cluster,
		Location:          cfg.Location,
		DNSPrefix:         names.DNSPrefix,
		NodeResourceGroup: naming.NodeResourceGroup(names.ResourceGroup, names.Cluster, cfg.Location),
		KubernetesVersion: cfg.Cluster.KubernetesVersion,
		NodeCount:         int32(cfg.Cluster.NodeCount), //nolint:gosec // validated to a small positive count
		NodeVMSize:        cfg.Cluster.NodeVMSize,
		SSHPublicKey:      key.AuthorizedKey(),
		BlobCSIDriver:     cfg.HasStorage(config.StorageBlob),
		FileCSIDriver:     true,
		Tags:              cfg.Tags(),
	}

	ctx.Observer.Printf("[%s] Reconciling AKS cluster %s (%d x %s); this takes several minutes...",
		phase, opts.Name, opts.NodeCount, opts.NodeVMSize)

	cluster, err := ctx.Azure.EnsureCluster(ctx, opts)
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "AKS cluster", opts.Name, err)
		return fmt.Errorf("failed to ensure AKS cluster %s: %w", opts.Name, err)
	}
	if cluster.OIDCIssuerURL == "" {
		return fmt.Errorf("AKS cluster %s has no OIDC issuer URL", cluster.Name)
	}
	if cluster.NodeResourceGroup == "" {
		cluster.NodeResourceGroup = opts.NodeResourceGroup
	}

	ctx.State.Cluster = cluster
	ctx.State.NodeResourceGroupID = azure.ResourceGroupID(ctx.Azure.SubscriptionID(), cluster.NodeResourceGroup)
	if run := ctx.State.Run; run != nil {
		run.NodeResourceGroup = cluster.NodeResourceGroup
		run.OIDCIssuerURL = cluster.OIDCIssuerURL
	}

	ctx.Metrics.RecordResource("AKS cluster", cluster.Created)
	provisioning.LogResourceEnsured(ctx.Observer, phase, "AKS cluster", cluster.Name, cluster.ID, cluster.Created)
	ctx.Observer.Printf("[%s] OIDC issuer %s", phase, cluster.OIDCIssuerURL)
	return nil
}

// nodeKey generates the SSH key for the node pool's Linux profile and
// saves it when a key directory is configured.
func (p *Provisioner) nodeKey(ctx *provisioning.Context, cluster string) (*keygen.KeyPair, error) {
	bits := p.KeyBits
	if bits == 0 {
		bits = keygen.DefaultBits
	}
	key, err := keygen.GenerateRSAKeyPair(bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate node SSH key: %w", err)
	}

	if dir := ctx.Config.Output.SSHKeyDir; dir != "" {
		path, err := key.Save(dir, cluster+"_rsa")
		if err != nil {
			return nil, fmt.Errorf("failed to save node SSH key: %w", err)
		}
		ctx.Observer.Printf("[%s] Node SSH key written to %s", phase, filepath.Clean(path))
	}
	return key, nil
}
