package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/aks-storage/cmd/aks-storage/handlers"
	"github.com/imamik/aks-storage/internal/config"
)

// Run returns the command that provisions and validates the use cases.
//
// Every configuration flag can also be set with an AKS_STORAGE_* environment
// variable or a key of the --config file.
//
// Run-only flags:
//
//	--interactive: ask for unset selections with a form
//	--tui: show the progress dashboard
//	--job-timeout-static, --job-timeout-dynamic: validation timeouts
//	--no-verify-backing-store: skip the blob existence check
func Run() *cobra.Command {
	var opts handlers.RunOptions
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Provision the storage use cases and validate them",
		Long: `Provision a resource group, managed identity, storage account and AKS
cluster, then apply and validate a writer job and reader pod per use case.

Use cases:
  1  Blob Storage with Static Provisioning
  2  Blob Storage with Dynamic Provisioning
  3  Azure Files with Static Provisioning
  4  Azure Files with Dynamic Provisioning

Examples:
  # Run all four use cases
  aks-storage run

  # Run only static blob volumes without shared key access
  aks-storage run --disable-shared-key

  # Run dynamic Azure Files volumes in another region
  aks-storage run --storage File --provision Dynamic --location westeurope

  # Choose interactively and follow progress in a dashboard
  aks-storage run --interactive --tui`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := newViper(cmd.Flags())
			if err != nil {
				return err
			}
			if noVerify {
				v.Set(config.KeyVerifyBackingStore, false)
			}
			opts.GlobalOptions = globalOptions(cmd)
			return handlers.Run(cmd.Context(), v, opts)
		},
	}

	addSelectionFlags(cmd.Flags())
	addRunFlags(cmd.Flags())

	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Ask for unset selections interactively")
	cmd.Flags().BoolVar(&opts.TUI, "tui", false, "Show a progress dashboard when attached to a terminal")
	cmd.Flags().DurationVar(&opts.StaticJobTimeout, "job-timeout-static", 0, "Validation timeout of static use cases (default 5m)")
	cmd.Flags().DurationVar(&opts.DynamicJobTimeout, "job-timeout-dynamic", 0, "Validation timeout of dynamic use cases (default 10m)")
	cmd.Flags().BoolVar(&noVerify, "no-verify-backing-store", false, "Skip checking the written blob in the storage container")

	return cmd
}
