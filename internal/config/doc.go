// Package config defines the run configuration shared by every phase.
//
// A [Config] is built from command-line flags, AKS_STORAGE_* environment
// variables and an optional YAML file (see [Load]). It selects the use cases
// under test, derives every Azure resource name from the group prefix and run
// id, and carries the timeouts used by the provisioning and validation
// phases. [RunState] records what a run created so destroy and repeated runs
// can find it again.
package config
