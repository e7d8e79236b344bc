package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/aks-storage/cmd/aks-storage/handlers"
)

// Render returns the command that prints the manifests of the selected
// use cases.
func Render() *cobra.Command {
	var opts handlers.RenderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the Kubernetes manifests without provisioning",
		Long: `Print the service account and per use case manifests that run would apply.

Nothing is created in Azure or in a cluster. Resource names derive from
--group and --id, so pass the id of an existing run to reproduce its
manifests.

Examples:
  # Render every use case
  aks-storage render --id abc123

  # Render static Azure Files as a kubectl-compatible JSON list
  aks-storage render --storage File --provision Persistent -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := newViper(cmd.Flags())
			if err != nil {
				return err
			}
			opts.GlobalOptions = globalOptions(cmd)
			return handlers.Render(cmd.Context(), v, opts)
		},
	}

	addSelectionFlags(cmd.Flags())
	cmd.Flags().StringVar(&opts.ClientID, "client-id", handlers.PlaceholderClientID, "Managed identity client id")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", handlers.FormatYAML, "Output format (yaml or json)")

	return cmd
}
