package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/phasepack/internal/build"
)

// NewVersionCommand returns the command to get the phaseret version
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Return the phaseret version",
		Long:  "Return the phaseret version.",
		RunE:  version,
		Args:  cobra.NoArgs,
	}

	return cmd
}

// print out the built version
func version(cmd *cobra.Command, _ []string) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "phaseret version %s date %s commit %s\n", build.Version, build.Date, build.Commit)
	return err
}
