package wizard

import (
	"context"

	"github.com/charmbracelet/huh"
)

// runIdentityGroup prompts for the group prefix and region.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Group").
				Description("Prefix of every Azure resource name").
				Placeholder("aks-storage-poc").
				Value(&result.Group).
				Validate(validateGroup),
			huh.NewSelect[string]().
				Title("Location").
				Description("Azure region").
				Options(LocationsToOptions()...).
				Value(&result.Location),
		).Title("Run"),
	).RunWithContext(ctx)
}

// runSelectionGroup prompts for the storage and provision dimensions.
func runSelectionGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage").
				Description("Azure storage service backing the volumes").
				Options(StorageOptions...).
				Value(&result.Storage),
			huh.NewSelect[string]().
				Title("Provisioning").
				Description("How volumes are provisioned").
				Options(ProvisionOptions...).
				Value(&result.Provision),
		).Title("Use Cases"),
	).RunWithContext(ctx)
}

// runAccessGroup asks whether shared key access is disabled. It is only
// shown when Blob/Persistent is the sole selected case.
func runAccessGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Disable shared key access?").
				Description("The volume then mounts through the workload identity alone").
				Affirmative("Yes").
				Negative("No").
				Value(&result.DisableSharedKey),
		).Title("Storage Access"),
	).RunWithContext(ctx)
}
