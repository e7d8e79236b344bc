package wizard

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/viper"

	"github.com/imamik/aks-storage/internal/config"
)

// groupRegex matches groups that still derive valid Azure resource names.
var groupRegex = regexp.MustCompile(`^[a-z]([a-z0-9-]{0,38}[a-z0-9])?$`)

// WizardResult holds the answers of the interactive wizard.
type WizardResult struct {
	Group    string
	Location string

	// Storage and Provision are empty when every value is selected.
	Storage   string
	Provision string

	DisableSharedKey bool
}

// UseCases returns the use cases the answers select.
func (r *WizardResult) UseCases() []config.UseCase {
	return config.SelectUseCases(config.StorageType(r.Storage), config.ProvisionType(r.Provision))
}

// keylessSelection reports whether the answers select only Blob/Persistent.
func (r *WizardResult) keylessSelection() bool {
	cases := r.UseCases()
	return len(cases) == 1 && cases[0].KeylessCandidate()
}

// FromViper seeds a result with the values v currently resolves.
func FromViper(v *viper.Viper) *WizardResult {
	return &WizardResult{
		Group:            v.GetString(config.KeyGroup),
		Location:         v.GetString(config.KeyLocation),
		Storage:          v.GetString(config.KeyStorage),
		Provision:        v.GetString(config.KeyProvision),
		DisableSharedKey: v.GetBool(config.KeyDisableSharedKey),
	}
}

// RunWizard runs the interactive wizard starting from defaults.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, defaults *WizardResult) (*WizardResult, error) {
	result := *defaults
	if result.Location == "" {
		result.Location = config.DefaultLocation
	}

	if err := runIdentityGroup(ctx, &result); err != nil {
		return nil, fmt.Errorf("run identity: %w", err)
	}
	if err := runSelectionGroup(ctx, &result); err != nil {
		return nil, fmt.Errorf("use cases: %w", err)
	}

	if result.keylessSelection() {
		if err := runAccessGroup(ctx, &result); err != nil {
			return nil, fmt.Errorf("storage access: %w", err)
		}
	} else {
		result.DisableSharedKey = false
	}
	return &result, nil
}

// Apply writes the answers into v so config.Load picks them up.
func Apply(v *viper.Viper, r *WizardResult) {
	v.Set(config.KeyGroup, r.Group)
	v.Set(config.KeyLocation, r.Location)
	v.Set(config.KeyStorage, r.Storage)
	v.Set(config.KeyProvision, r.Provision)
	v.Set(config.KeyDisableSharedKey, r.DisableSharedKey)
}

func validateGroup(s string) error {
	if s == "" {
		return errGroupRequired
	}
	if !groupRegex.MatchString(s) {
		return errGroupInvalid
	}
	return nil
}
