// Package cli provides the command-line interface for pipesmith.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipesmith/pipesmith/internal/constants"
	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/matrix"
)

// matrixGenerateFlags holds flags specific to the matrix generate command.
type matrixGenerateFlags struct {
	// Mode selects the generation strategy.
	Mode string
	// OutPath is the destination for the matrix JSON file.
	OutPath string
}

// addMatrixGenerateCmd adds the generate subcommand to the matrix command.
func addMatrixGenerateCmd(parent *cobra.Command, _ *GlobalFlags) {
	flags := &matrixGenerateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a test matrix",
		Long: `Generate a test matrix of named pipeline configurations.

Modes:
  curated        hand-picked variants covering common project shapes
  exhaustive     systematic sweep over the test-relevant axes, deduplicated
                 by command signature
  fixed-profile  one entry per package manager and build profile

Examples:
  pipesmith matrix generate --mode curated --out matrix.json
  pipesmith matrix generate --mode exhaustive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatrixGenerate(cmd.Context(), flags, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", string(matrix.ModeCurated), "generation mode (curated|exhaustive|fixed-profile)")
	cmd.Flags().StringVar(&flags.OutPath, "out", constants.MatrixFileName, "output file")

	parent.AddCommand(cmd)
}

// runMatrixGenerate executes the matrix generate command.
func runMatrixGenerate(ctx context.Context, flags *matrixGenerateFlags, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	logger := GetLogger()

	mode, err := matrix.ParseMode(flags.Mode)
	if err != nil {
		return err
	}

	m, err := matrix.Generate(mode)
	if err != nil {
		return errors.Wrapf(err, "failed to generate %s matrix", mode)
	}

	if err := m.WriteFile(flags.OutPath); err != nil {
		return errors.Wrapf(err, "failed to write matrix to %s", flags.OutPath)
	}

	logger.Info().
		Str("mode", string(mode)).
		Str("out", flags.OutPath).
		Int("entries", len(m)).
		Msg("matrix generated")

	_, _ = fmt.Fprintf(w, "Generated %d entries (%s) to %s\n", len(m), mode, flags.OutPath)
	return nil
}
