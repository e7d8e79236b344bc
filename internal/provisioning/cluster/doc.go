// Package cluster provisions the AKS cluster and wires workload identity.
//
// The cluster is created with the OIDC issuer and workload identity enabled
// and with the CSI drivers the selected use cases need. Once it is running
// the user kubeconfig is fetched and merged into the kubeconfig file, the
// annotated service account is applied, and a federated identity credential
// makes the managed identity trust that service account's tokens.
package cluster
