// Package cli defines the expense-tracker command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "expense-tracker",
		Short:        "Personal expense tracking API",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newPreviewEmailCmd(),
	)
	return cmd
}
