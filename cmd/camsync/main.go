package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"camsync/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "camsync",
		Short: "Camera media import and organization utility",
		Long: `camsync copies photos and videos from a camera or memory card into a
library organized by capture date. Transfers run concurrently, duplicate
content is detected by hash, and interrupted runs can be resumed.`,
		Version:       cli.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewSyncCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
