// Package cli provides the command-line interface for pipesmith.
package cli

import (
	"github.com/spf13/cobra"
)

// AddMatrixCommand adds the matrix command and its subcommands to the root command.
func AddMatrixCommand(root *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Manage test matrices of pipeline configurations",
		Long: `Generate, inspect, and verify test matrices.

A matrix is an ordered list of named configuration entries, each bound
to a fixture app, used to exercise generated pipelines end to end.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addMatrixGenerateCmd(cmd, global)
	addMatrixListCmd(cmd, global)
	addMatrixVerifyCmd(cmd, global)

	root.AddCommand(cmd)
}
