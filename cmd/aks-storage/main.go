// Package main is the entry point for the aks-storage CLI.
//
// aks-storage provisions an AKS cluster with a user-assigned managed
// identity federated to a Kubernetes service account, then proves that
// Blob and Azure Files volumes work through it, statically and dynamically
// provisioned. The exit code reports how many use cases passed.
//
// Commands: init, run, render, destroy, doctor, version.
//
// For detailed usage information, run:
//
//	aks-storage --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/aks-storage/cmd/aks-storage/commands"
	"github.com/imamik/aks-storage/cmd/aks-storage/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return handlers.ExitCode(err)
	}
	return 0
}
