package azure

import (
	"context"
	"fmt"
	"slices"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"

	"github.com/imamik/aks-storage/internal/util/ptr"
)

// EnsureIdentity gets or creates a user-assigned managed identity. The
// client and principal ids must both be populated.
func (c *RealClient) EnsureIdentity(ctx context.Context, resourceGroup, name, location string, tags map[string]string) (*Identity, error) {
	res, err := (&EnsureOperation[armmsi.Identity, armmsi.Identity]{
		Name:         name,
		ResourceType: "managed identity",
		Get: func(ctx context.Context) (armmsi.Identity, error) {
			resp, err := c.identities.Get(ctx, resourceGroup, name, nil)
			return resp.Identity, err
		},
		Create: func(ctx context.Context, params armmsi.Identity) (armmsi.Identity, error) {
			resp, err := c.identities.CreateOrUpdate(ctx, resourceGroup, name, params, nil)
			return resp.Identity, err
		},
		CreateOptsMapper: func() armmsi.Identity {
			return armmsi.Identity{
				Location: ptr.To(location),
				Tags:     ptr.StringMap(tags),
			}
		},
	}).Execute(ctx, c)
	if err != nil {
		return nil, err
	}
	return identityFromARM(name, res.Resource, res.Created)
}

func identityFromARM(name string, id armmsi.Identity, created bool) (*Identity, error) {
	out := &Identity{
		ID:      ptr.Deref(id.ID, ""),
		Name:    ptr.Deref(id.Name, name),
		Created: created,
	}
	if id.Properties != nil {
		out.ClientID = ptr.Deref(id.Properties.ClientID, "")
		out.PrincipalID = ptr.Deref(id.Properties.PrincipalID, "")
		out.TenantID = ptr.Deref(id.Properties.TenantID, "")
	}
	if out.ClientID == "" || out.PrincipalID == "" {
		return nil, fmt.Errorf("managed identity %s has no client or principal id", name)
	}
	return out, nil
}

// EnsureFederatedCredential gets or creates a federated identity credential
// on the identity. An existing credential with a different issuer, subject
// or audience list is updated in place.
func (c *RealClient) EnsureFederatedCredential(ctx context.Context, resourceGroup, identity string, cred FederatedCredential) (bool, error) {
	desired := armmsi.FederatedIdentityCredential{
		Properties: &armmsi.FederatedIdentityCredentialProperties{
			Issuer:    ptr.To(cred.Issuer),
			Subject:   ptr.To(cred.Subject),
			Audiences: ptr.Strings(cred.Audiences...),
		},
	}
	put := func(ctx context.Context, params armmsi.FederatedIdentityCredential) (armmsi.FederatedIdentityCredential, error) {
		resp, err := c.federatedCredentials.CreateOrUpdate(ctx, resourceGroup, identity, cred.Name, params, nil)
		return resp.FederatedIdentityCredential, err
	}

	res, err := (&EnsureOperation[armmsi.FederatedIdentityCredential, armmsi.FederatedIdentityCredential]{
		Name:         cred.Name,
		ResourceType: "federated identity credential",
		Get: func(ctx context.Context) (armmsi.FederatedIdentityCredential, error) {
			resp, err := c.federatedCredentials.Get(ctx, resourceGroup, identity, cred.Name, nil)
			return resp.FederatedIdentityCredential, err
		},
		Create: put,
		Update: func(ctx context.Context, existing armmsi.FederatedIdentityCredential) (armmsi.FederatedIdentityCredential, error) {
			if federatedCredentialMatches(existing, cred) {
				return existing, nil
			}
			return put(ctx, desired)
		},
		CreateOptsMapper: func() armmsi.FederatedIdentityCredential { return desired },
	}).Execute(ctx, c)
	if err != nil {
		return false, err
	}
	return res.Created, nil
}

func federatedCredentialMatches(existing armmsi.FederatedIdentityCredential, want FederatedCredential) bool {
	p := existing.Properties
	if p == nil {
		return false
	}
	if ptr.Deref(p.Issuer, "") != want.Issuer || ptr.Deref(p.Subject, "") != want.Subject {
		return false
	}
	got := make([]string, 0, len(p.Audiences))
	for _, a := range p.Audiences {
		got = append(got, ptr.Deref(a, ""))
	}
	slices.Sort(got)
	wantAud := slices.Clone(want.Audiences)
	slices.Sort(wantAud)
	return slices.Equal(got, wantAud)
}
