// Package azure wraps the Azure Resource Manager SDK clients used to
// provision a storage test environment.
//
// Every resource is reconciled with get-or-create semantics: a Get that
// returns 404 triggers creation, any other error aborts. Transient ARM
// failures (throttling, 5xx, operations still in progress) are retried with
// exponential backoff; everything else is returned immediately.
//
// # Layout
//
//   - client.go: Client interface and the domain types it returns
//   - real_client.go: RealClient construction and subscription resolution
//   - operations.go: generic EnsureOperation and DeleteOperation
//   - errors.go: ResponseError classification
//   - resource_group.go, identity.go, storage.go, roles.go, cluster.go:
//     one file per ARM resource family
//   - blob.go: data plane check that a blob exists
//   - mock_client.go: Func-field mock for callers' tests
//
// # Retry and Timeout Configuration
//
// Timeouts and retry parameters come from config.Timeouts and can be set
// through AKS_STORAGE_TIMEOUT_* and AKS_STORAGE_RETRY_* environment variables.
package azure
