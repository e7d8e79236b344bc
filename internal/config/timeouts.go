package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	ResourceCreate    time.Duration // Timeout for resource group, identity and storage operations
	ClusterCreate     time.Duration // Timeout for AKS cluster creation
	Delete            time.Duration // Timeout for resource group deletion
	StaticJob         time.Duration // Timeout for a static use case's creator job and reader pod
	DynamicJob        time.Duration // Timeout for a dynamic use case's creator job and reader pod
	PollInterval      time.Duration // Interval between cluster object polls
	RetryMaxAttempts  int           // Maximum number of retries for transient Azure errors
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - AKS_STORAGE_TIMEOUT_RESOURCE_CREATE (default: 10m)
//   - AKS_STORAGE_TIMEOUT_CLUSTER_CREATE (default: 30m)
//   - AKS_STORAGE_TIMEOUT_DELETE (default: 30m)
//   - AKS_STORAGE_TIMEOUT_STATIC_JOB (default: 5m)
//   - AKS_STORAGE_TIMEOUT_DYNAMIC_JOB (default: 10m)
//   - AKS_STORAGE_POLL_INTERVAL (default: 5s)
//   - AKS_STORAGE_RETRY_MAX_ATTEMPTS (default: 3)
//   - AKS_STORAGE_RETRY_INITIAL_DELAY (default: 5s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ResourceCreate:    parseDuration("AKS_STORAGE_TIMEOUT_RESOURCE_CREATE", 10*time.Minute),
		ClusterCreate:     parseDuration("AKS_STORAGE_TIMEOUT_CLUSTER_CREATE", 30*time.Minute),
		Delete:            parseDuration("AKS_STORAGE_TIMEOUT_DELETE", 30*time.Minute),
		StaticJob:         parseDuration("AKS_STORAGE_TIMEOUT_STATIC_JOB", 5*time.Minute),
		DynamicJob:        parseDuration("AKS_STORAGE_TIMEOUT_DYNAMIC_JOB", 10*time.Minute),
		PollInterval:      parseDuration("AKS_STORAGE_POLL_INTERVAL", 5*time.Second),
		RetryMaxAttempts:  parseInt("AKS_STORAGE_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("AKS_STORAGE_RETRY_INITIAL_DELAY", 5*time.Second),
	}
}

// TestTimeouts returns short timeouts for unit tests.
func TestTimeouts() *Timeouts {
	return &Timeouts{
		ResourceCreate:    5 * time.Second,
		ClusterCreate:     5 * time.Second,
		Delete:            5 * time.Second,
		StaticJob:         2 * time.Second,
		DynamicJob:        2 * time.Second,
		PollInterval:      10 * time.Millisecond,
		RetryMaxAttempts:  2,
		RetryInitialDelay: time.Millisecond,
	}
}

// JobTimeout returns the validation timeout for a use case.
func (t *Timeouts) JobTimeout(uc UseCase) time.Duration {
	if uc.IsStatic() {
		return t.StaticJob
	}
	return t.DynamicJob
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
