package main

import (
	"os"

	"github.com/schungx/loco/internal/commands"
)

func main() {
	root := commands.RootCmd()
	root.AddCommand(commands.GenerateCmd())
	root.AddCommand(commands.ListCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
