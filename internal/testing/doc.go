// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - AzureFixture: Pre-configured mock Azure client for common scenarios
//   - MockKubeClient: testify mock of the Kubernetes client
//   - RecordingObserver: Observer that records messages and events
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithStorage(config.StorageBlob).
//	    WithProvision(config.ProvisionPersistent).
//	    Build()
//
//	az := testing.NewAzureFixture().SuccessfulProvisioning()
//	ctx, obs := testing.NewProvisioningContext(t, cfg, az)
package testing
