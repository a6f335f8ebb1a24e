package main

import (
	"os"

	"github.com/katalvlaran/phasepack/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	rootCmd.AddCommand(cmd.NewSolveCommand())
	rootCmd.AddCommand(cmd.NewCompareCommand())
	rootCmd.AddCommand(cmd.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
