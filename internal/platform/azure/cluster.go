package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v4"

	"github.com/imamik/aks-storage/internal/util/ptr"
)

const (
	systemPoolName       = "nodepool1"
	adminUsername        = "azureuser"
	clusterPollFrequency = 15 * time.Second
)

// EnsureCluster gets or creates an AKS cluster with the OIDC issuer and
// workload identity enabled. An existing cluster missing either feature, or
// a requested CSI driver, is updated.
func (c *RealClient) EnsureCluster(ctx context.Context, opts ClusterOpts) (*Cluster, error) {
	put := func(ctx context.Context, params armcontainerservice.ManagedCluster) (armcontainerservice.ManagedCluster, error) {
		poller, err := c.clusters.BeginCreateOrUpdate(ctx, opts.ResourceGroup, opts.Name, params, nil)
		if err != nil {
			return armcontainerservice.ManagedCluster{}, err
		}
		resp, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: clusterPollFrequency})
		if err != nil {
			return armcontainerservice.ManagedCluster{}, err
		}
		return resp.ManagedCluster, nil
	}

	res, err := (&EnsureOperation[armcontainerservice.ManagedCluster, armcontainerservice.ManagedCluster]{
		Name:         opts.Name,
		ResourceType: "AKS cluster",
		Timeout:      c.timeouts.ClusterCreate,
		Get: func(ctx context.Context) (armcontainerservice.ManagedCluster, error) {
			resp, err := c.clusters.Get(ctx, opts.ResourceGroup, opts.Name, nil)
			return resp.ManagedCluster, err
		},
		Create: put,
		Update: func(ctx context.Context, existing armcontainerservice.ManagedCluster) (armcontainerservice.ManagedCluster, error) {
			if !applyClusterFeatures(&existing, opts) {
				return existing, nil
			}
			return put(ctx, existing)
		},
		CreateOptsMapper: func() armcontainerservice.ManagedCluster {
			return managedClusterParameters(opts)
		},
	}).Execute(ctx, c)
	if err != nil {
		return nil, err
	}

	cluster := clusterFromARM(opts, res.Resource, res.Created)
	if cluster.OIDCIssuerURL == "" {
		return nil, fmt.Errorf("AKS cluster %s has no OIDC issuer URL", opts.Name)
	}
	return cluster, nil
}

func managedClusterParameters(opts ClusterOpts) armcontainerservice.ManagedCluster {
	props := &armcontainerservice.ManagedClusterProperties{
		DNSPrefix:         ptr.To(opts.DNSPrefix),
		NodeResourceGroup: ptr.To(opts.NodeResourceGroup),
		AgentPoolProfiles: []*armcontainerservice.ManagedClusterAgentPoolProfile{{
			Name:   ptr.To(systemPoolName),
			Count:  ptr.To(opts.NodeCount),
			VMSize: ptr.To(opts.NodeVMSize),
			OSType: ptr.To(armcontainerservice.OSTypeLinux),
			Mode:   ptr.To(armcontainerservice.AgentPoolModeSystem),
			Type:   ptr.To(armcontainerservice.AgentPoolTypeVirtualMachineScaleSets),
		}},
		LinuxProfile: &armcontainerservice.LinuxProfile{
			AdminUsername: ptr.To(adminUsername),
			SSH: &armcontainerservice.SSHConfiguration{
				PublicKeys: []*armcontainerservice.SSHPublicKey{{KeyData: ptr.To(opts.SSHPublicKey)}},
			},
		},
	}
	if opts.KubernetesVersion != "" {
		props.KubernetesVersion = ptr.To(opts.KubernetesVersion)
	}

	mc := armcontainerservice.ManagedCluster{
		Location: ptr.To(opts.Location),
		Tags:     ptr.StringMap(opts.Tags),
		Identity: &armcontainerservice.ManagedClusterIdentity{
			Type: ptr.To(armcontainerservice.ResourceIdentityTypeSystemAssigned),
		},
		Properties: props,
	}
	applyClusterFeatures(&mc, opts)
	return mc
}

// applyClusterFeatures turns on the features a run depends on and reports
// whether anything changed. Features are never turned off.
func applyClusterFeatures(mc *armcontainerservice.ManagedCluster, opts ClusterOpts) bool {
	if mc.Properties == nil {
		mc.Properties = &armcontainerservice.ManagedClusterProperties{}
	}
	p := mc.Properties
	changed := false

	if p.OidcIssuerProfile == nil || !ptr.Deref(p.OidcIssuerProfile.Enabled, false) {
		p.OidcIssuerProfile = &armcontainerservice.ManagedClusterOIDCIssuerProfile{Enabled: ptr.To(true)}
		changed = true
	}

	if p.SecurityProfile == nil {
		p.SecurityProfile = &armcontainerservice.ManagedClusterSecurityProfile{}
	}
	if wi := p.SecurityProfile.WorkloadIdentity; wi == nil || !ptr.Deref(wi.Enabled, false) {
		p.SecurityProfile.WorkloadIdentity = &armcontainerservice.ManagedClusterSecurityProfileWorkloadIdentity{Enabled: ptr.To(true)}
		changed = true
	}

	if p.StorageProfile == nil {
		p.StorageProfile = &armcontainerservice.ManagedClusterStorageProfile{}
	}
	sp := p.StorageProfile
	if opts.BlobCSIDriver && (sp.BlobCSIDriver == nil || !ptr.Deref(sp.BlobCSIDriver.Enabled, false)) {
		sp.BlobCSIDriver = &armcontainerservice.ManagedClusterStorageProfileBlobCSIDriver{Enabled: ptr.To(true)}
		changed = true
	}
	if opts.FileCSIDriver && (sp.FileCSIDriver == nil || !ptr.Deref(sp.FileCSIDriver.Enabled, false)) {
		sp.FileCSIDriver = &armcontainerservice.ManagedClusterStorageProfileFileCSIDriver{Enabled: ptr.To(true)}
		changed = true
	}
	return changed
}

func clusterFromARM(opts ClusterOpts, mc armcontainerservice.ManagedCluster, created bool) *Cluster {
	out := &Cluster{
		ID:      ptr.Deref(mc.ID, ""),
		Name:    ptr.Deref(mc.Name, opts.Name),
		Created: created,
	}
	if p := mc.Properties; p != nil {
		out.FQDN = ptr.Deref(p.Fqdn, "")
		out.NodeResourceGroup = ptr.Deref(p.NodeResourceGroup, "")
		out.ProvisioningState = ptr.Deref(p.ProvisioningState, "")
		if p.OidcIssuerProfile != nil {
			out.OIDCIssuerURL = ptr.Deref(p.OidcIssuerProfile.IssuerURL, "")
		}
	}
	if out.NodeResourceGroup == "" {
		out.NodeResourceGroup = opts.NodeResourceGroup
	}
	return out
}

// GetClusterCredentials returns the user kubeconfig of a cluster.
func (c *RealClient) GetClusterCredentials(ctx context.Context, resourceGroup, name string) ([]byte, error) {
	resp, err := c.clusters.ListClusterUserCredentials(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials for AKS cluster %s: %w", name, err)
	}
	for _, kc := range resp.Kubeconfigs {
		if kc != nil && len(kc.Value) > 0 {
			return kc.Value, nil
		}
	}
	return nil, fmt.Errorf("AKS cluster %s returned no kubeconfig", name)
}
