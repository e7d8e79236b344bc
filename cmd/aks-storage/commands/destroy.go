package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/aks-storage/cmd/aks-storage/handlers"
	"github.com/imamik/aks-storage/internal/config"
)

// Destroy returns the command for tearing down a run.
//
// Optional flags:
//
//	--state-file: run state written by run (default: aks-storage-state.yaml)
//	--resource-group: delete this group instead of the recorded one
//	--subscription: subscription of the group (default: recorded one)
func Destroy() *cobra.Command {
	var opts handlers.DestroyOptions

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the resources of a run",
		Long: `Delete the resource group of a run and wait for completion.

The group is read from the state file written by run. Deleting it removes
the managed identity, the storage account and the AKS cluster with its
node resource group. A group that no longer exists is not an error.

Examples:
  # Destroy the run recorded in aks-storage-state.yaml
  aks-storage destroy

  # Destroy a group directly
  aks-storage destroy --resource-group aks-storage-poc-abc123-rg`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.GlobalOptions = globalOptions(cmd)
			return handlers.Destroy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.StateFile, config.KeyStateFile, config.DefaultStateFile, "Run state file")
	cmd.Flags().StringVar(&opts.ResourceGroup, "resource-group", "", "Resource group to delete")
	cmd.Flags().StringVar(&opts.Subscription, config.KeySubscription, "", "Azure subscription id")

	return cmd
}
