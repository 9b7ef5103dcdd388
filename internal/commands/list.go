package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schungx/loco/internal/catalog"
)

// ListCmd creates the list command, which prints the built-in generators.
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available generators",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Builtin()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Available generators:")
			for _, name := range cat.Names() {
				fmt.Fprintf(w, "  %-12s %s\n", name, cat.Describe(name))
			}
			return nil
		},
	}
}
