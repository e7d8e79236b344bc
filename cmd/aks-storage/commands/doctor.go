package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/aks-storage/cmd/aks-storage/handlers"
	"github.com/imamik/aks-storage/internal/config"
)

// Doctor returns the command for diagnosing the local setup.
//
// Optional flags:
//
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, Azure credentials and tools",
		Long: `Check that a run can start.

  - Loads and validates the configuration
  - Acquires an Azure management token
  - Resolves the subscription
  - Looks up optional CLIs (az, kubectl, kubelogin)

Examples:
  aks-storage doctor
  aks-storage doctor --subscription 00000000-0000-0000-0000-000000000000 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := newViper(cmd.Flags())
			if err != nil {
				return err
			}
			return handlers.Doctor(cmd.Context(), v, globalOptions(cmd), jsonOutput)
		},
	}

	addSelectionFlags(cmd.Flags())
	cmd.Flags().String(config.KeySubscription, "", "Azure subscription id")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
