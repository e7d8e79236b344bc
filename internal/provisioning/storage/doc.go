// Package storage prepares each selected use case on the running cluster.
//
// Cases are handled one after another. For statically provisioned cases the
// blob container or file share is created in the run's storage account and
// the identity gets key operator and data access on the account. Every case
// grants the identity Reader on the node resource group, then its volume and
// workload manifests are applied. A case that fails is recorded and the
// remaining cases still run.
package storage
