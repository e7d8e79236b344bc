// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/aks-storage/cmd/aks-storage/handlers"
)

// Persistent flag names.
const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagLogFile  = "log-file"
)

// Root returns the root command for the aks-storage CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It carries the flags every subcommand shares.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aks-storage",
		Short: "Validate Azure storage on AKS with workload identity",
		Long: `Provision an AKS cluster with a workload identity and validate
Blob and Azure Files volumes, statically and dynamically provisioned.

Exit codes:
  0  every selected use case passed
  1  fatal or usage error
  2  some use cases failed
  3  no use case passed`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP(flagConfig, "c", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().String(flagLogLevel, "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String(flagLogFile, "", "Also write JSON logs to this file (rotated)")

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Run())
	cmd.AddCommand(Render())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Doctor())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// globalOptions reads the persistent flags of cmd.
func globalOptions(cmd *cobra.Command) handlers.GlobalOptions {
	flags := cmd.Flags()
	configPath, _ := flags.GetString(flagConfig)
	logLevel, _ := flags.GetString(flagLogLevel)
	logFile, _ := flags.GetString(flagLogFile)
	return handlers.GlobalOptions{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		LogFile:    logFile,
	}
}
