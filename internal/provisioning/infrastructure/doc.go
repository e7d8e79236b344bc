// Package infrastructure provisions the Azure resources shared by every use case.
//
// It creates the resource group, the user-assigned managed identity the
// workloads federate with, and, when a statically provisioned use case is
// selected, the storage account holding their container and share. All
// resources are created idempotently and tagged with the run's group and id.
package infrastructure
