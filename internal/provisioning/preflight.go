package provisioning

import (
	"fmt"
	"strings"
)

const phasePreflight = "preflight"

// ValidationError represents a pre-flight error or warning.
type ValidationError struct {
	Field    string // Configuration field or check that failed
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// PreflightPhase checks configuration and Azure access before anything is
// created.
type PreflightPhase struct{}

// NewPreflightPhase creates a new pre-flight phase.
func NewPreflightPhase() *PreflightPhase {
	return &PreflightPhase{}
}

// Name implements the Phase interface.
func (p *PreflightPhase) Name() string {
	return phasePreflight
}

// Provision implements the Phase interface.
func (p *PreflightPhase) Provision(ctx *Context) error {
	ctx.Observer.Printf("[%s] Running pre-flight checks...", phasePreflight)

	var errs []string
	for _, ve := range preflight(ctx) {
		eventType := EventValidationWarning
		if ve.IsError() {
			eventType = EventValidationError
			errs = append(errs, ve.Error())
		}
		ctx.Observer.Event(Event{
			Type:    eventType,
			Phase:   phasePreflight,
			Message: ve.Message,
			Fields:  map[string]string{"field": ve.Field},
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("pre-flight checks failed:\n  %s", strings.Join(errs, "\n  "))
	}

	ctx.Observer.Printf("[%s] Pre-flight checks passed", phasePreflight)
	return nil
}

// preflight runs every check and returns the errors and warnings found.
func preflight(ctx *Context) []ValidationError {
	var errs []ValidationError
	cfg := ctx.Config

	if err := cfg.Validate(); err != nil {
		errs = append(errs, ValidationError{Field: "config", Message: err.Error(), Severity: "error"})
		return errs
	}
	if cfg.ID == "" {
		errs = append(errs, ValidationError{Field: "id", Message: "run id has not been generated", Severity: "error"})
		return errs
	}

	if err := ctx.Azure.CheckAccess(ctx); err != nil {
		errs = append(errs, ValidationError{
			Field:    "credentials",
			Message:  fmt.Sprintf("cannot acquire an Azure management token: %v", err),
			Severity: "error",
		})
		return errs
	}

	if ctx.Azure.SubscriptionID() == "" {
		errs = append(errs, ValidationError{
			Field:    "subscription",
			Message:  "no subscription selected; pass --subscription or set AZURE_SUBSCRIPTION_ID",
			Severity: "error",
		})
	}

	names := cfg.Names()
	exists, err := ctx.Azure.ResourceGroupExists(ctx, names.ResourceGroup)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{
			Field:    "resourceGroup",
			Message:  fmt.Sprintf("cannot check resource group %s: %v", names.ResourceGroup, err),
			Severity: "error",
		})
	case exists:
		errs = append(errs, ValidationError{
			Field:    "resourceGroup",
			Message:  fmt.Sprintf("resource group %s already exists; existing resources are reused", names.ResourceGroup),
			Severity: "warning",
		})
	case cfg.NeedsStorageAccount():
		errs = append(errs, checkStorageAccountName(ctx, names.StorageAccount)...)
	}

	if v := cfg.Cluster.KubernetesVersion; strings.HasPrefix(v, "v") {
		errs = append(errs, ValidationError{
			Field:    "kubernetesVersion",
			Message:  fmt.Sprintf("AKS versions have no 'v' prefix (e.g., '1.31'), got %q", v),
			Severity: "error",
		})
	}

	return errs
}

func checkStorageAccountName(ctx *Context, name string) []ValidationError {
	available, reason, err := ctx.Azure.CheckStorageAccountName(ctx, name)
	if err != nil {
		return []ValidationError{{
			Field:    "storageAccount",
			Message:  fmt.Sprintf("cannot check storage account name %s: %v", name, err),
			Severity: "warning",
		}}
	}
	if !available {
		return []ValidationError{{
			Field:    "storageAccount",
			Message:  fmt.Sprintf("storage account name %s is not available: %s (choose another --group or --id)", name, reason),
			Severity: "error",
		}}
	}
	return nil
}
