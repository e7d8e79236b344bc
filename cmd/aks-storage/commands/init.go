package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/aks-storage/cmd/aks-storage/handlers"
)

// Init returns the command for interactively creating a configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "aks-storage.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create a configuration file for run --config.

The wizard asks for:

  - Resource name prefix and Azure region
  - Storage type (Blob, Azure Files or both)
  - Provision type (static, dynamic or both)
  - Shared key access, when only static Blob is selected`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "aks-storage.yaml", "Output file path")

	return cmd
}
