package infrastructure

import (
	"fmt"

	"github.com/imamik/aks-storage/internal/provisioning"
)

// ProvisionIdentity ensures the user-assigned managed identity and records
// its client and principal ids.
func (p *Provisioner) ProvisionIdentity(ctx *provisioning.Context) error {
	names := ctx.Config.Names()
	ctx.Observer.Printf("[%s] Reconciling managed identity %s...", phase, names.Identity)

	identity, err := ctx.Azure.EnsureIdentity(ctx, names.ResourceGroup, names.Identity, ctx.Config.Location, ctx.Config.Tags())
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "managed identity", names.Identity, err)
		return fmt.Errorf("failed to ensure managed identity %s: %w", names.Identity, err)
	}
	if identity.ClientID == "" || identity.PrincipalID == "" {
		return fmt.Errorf("managed identity %s has no client or principal id", names.Identity)
	}

	ctx.State.Identity = identity
	if ctx.State.Run != nil {
		ctx.State.Run.IdentityClientID = identity.ClientID
	}
	ctx.Metrics.RecordResource("managed identity", identity.Created)
	provisioning.LogResourceEnsured(ctx.Observer, phase, "managed identity", identity.Name, identity.ID, identity.Created)
	ctx.Observer.Printf("[%s] Identity client id %s, principal id %s", phase, identity.ClientID, identity.PrincipalID)
	return nil
}
