// Package retry retries operations with exponential backoff.
//
// [WithExponentialBackoff] is used around Azure Resource Manager calls that
// fail transiently: storage account creation, role assignments racing Entra ID
// replication of a freshly created identity, and throttled requests. Errors
// wrapped with [Fatal], or rejected by a [WithRetryable] classifier, stop the
// loop immediately.
package retry
