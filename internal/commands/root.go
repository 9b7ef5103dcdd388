package commands

import (
	"github.com/spf13/cobra"

	loco "github.com/schungx/loco"
	"github.com/schungx/loco/internal/output"
)

// RootCmd creates the root command for the loco CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "loco",
		Short: "Scaffolding engine for Go applications",
		Long: `loco generates models, controllers, migrations and more from templates,
and injects snippets into existing files at anchor markers, so repeated
runs never duplicate or corrupt generated code.`,
		Version: loco.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
