package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/imamik/aks-storage/internal/config"
)

// LocationOption represents an Azure region offered by the wizard.
type LocationOption struct {
	Value       string
	Description string
}

// Locations lists common regions with AKS workload identity support.
var Locations = []LocationOption{
	{Value: "centralus", Description: "Central US"},
	{Value: "eastus", Description: "East US"},
	{Value: "eastus2", Description: "East US 2"},
	{Value: "westus2", Description: "West US 2"},
	{Value: "westeurope", Description: "West Europe"},
	{Value: "northeurope", Description: "North Europe"},
	{Value: "germanywestcentral", Description: "Germany West Central"},
	{Value: "uksouth", Description: "UK South"},
	{Value: "southeastasia", Description: "Southeast Asia"},
}

// anyValue is the option value meaning "every value of this dimension".
const anyValue = ""

// StorageOptions offers the storage dimension of the use case selection.
var StorageOptions = []huh.Option[string]{
	huh.NewOption("Both (Blob and File)", anyValue),
	huh.NewOption("Blob Storage", string(config.StorageBlob)),
	huh.NewOption("Azure Files", string(config.StorageFile)),
}

// ProvisionOptions offers the provisioning dimension of the selection.
var ProvisionOptions = []huh.Option[string]{
	huh.NewOption("Both (static and dynamic)", anyValue),
	huh.NewOption("Persistent (static PersistentVolume)", string(config.ProvisionPersistent)),
	huh.NewOption("Dynamic (StorageClass)", string(config.ProvisionDynamic)),
}

// LocationsToOptions converts Locations to huh options.
func LocationsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Locations))
	for i, loc := range Locations {
		opts[i] = huh.NewOption(loc.Value+" - "+loc.Description, loc.Value)
	}
	return opts
}
