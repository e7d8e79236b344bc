// Package destroy tears down a run.
//
// Everything a run creates lives in its resource group; AKS removes the
// node resource group together with the cluster. Deleting the group is
// therefore the whole teardown. The group name comes from the persisted run
// state when one is loaded and is derived from the configuration otherwise.
package destroy
