// Package provisioning provides shared types, interfaces, and orchestration for a run.
//
// # Subpackages
//
//   - infrastructure/: resource group, managed identity, storage account
//   - cluster/: AKS cluster, kubeconfig, service account, federated credential
//   - storage/: per use case containers, shares, role assignments and manifests
//   - validation/: creator Job and reader Pod checks, backing store verification
//   - destroy/: resource group teardown
//
// # Core Types
//
// Context carries configuration, state, the Azure client, observer and metrics.
// Phase defines a provisioning step with Name() and Provision() methods.
// State accumulates results from each phase (identity, cluster, kubeconfig, case results).
package provisioning
