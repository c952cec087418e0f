// Package cli provides the command-line interface for pipesmith.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pipesmith/pipesmith/internal/constants"
	"github.com/pipesmith/pipesmith/internal/matrix"
	"github.com/pipesmith/pipesmith/internal/tui"
)

// matrixListFlags holds flags specific to the matrix list command.
type matrixListFlags struct {
	// MatrixPath is the path to the persisted matrix JSON file.
	MatrixPath string
}

// addMatrixListCmd adds the list subcommand to the matrix command.
func addMatrixListCmd(parent *cobra.Command, global *GlobalFlags) {
	flags := &matrixListFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the entries of a persisted matrix",
		Long: `Display a table of matrix entries with their index, fixture,
package manager, and configured test suites.

Examples:
  pipesmith matrix list
  pipesmith matrix list --matrix matrix.json --output json
  pipesmith matrix ls`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatrixList(cmd.Context(), flags, global, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&flags.MatrixPath, "matrix", constants.MatrixFileName, "matrix file")

	parent.AddCommand(cmd)
}

// runMatrixList executes the matrix list command.
func runMatrixList(ctx context.Context, flags *matrixListFlags, global *GlobalFlags, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	m, err := matrix.Load(flags.MatrixPath)
	if err != nil {
		return err
	}

	if len(m) == 0 {
		if global.Output == OutputJSON {
			_, _ = fmt.Fprintln(w, "[]")
		} else {
			_, _ = fmt.Fprintln(w, "Matrix is empty. Run 'pipesmith matrix generate' to create one.")
		}
		return nil
	}

	if global.Output == OutputJSON {
		return outputMatrixJSON(w, m)
	}

	return outputMatrixTable(w, m)
}

// outputMatrixJSON outputs matrix entries as a JSON array.
func outputMatrixJSON(w io.Writer, m matrix.Matrix) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("failed to encode matrix to JSON: %w", err)
	}
	return nil
}

// outputMatrixTable outputs matrix entries as a styled table.
func outputMatrixTable(w io.Writer, m matrix.Matrix) error {
	tui.CheckNoColor()
	headerStyle := tui.HeaderStyle()
	dim := tui.DimStyle()

	// Define column widths
	const (
		indexWidth   = 5
		nameWidth    = 34
		fixtureWidth = 18
		pmWidth      = 6
		testsWidth   = 24
	)

	header := fmt.Sprintf("%*s %-*s %-*s %-*s %-*s",
		indexWidth, "INDEX",
		nameWidth, "NAME",
		fixtureWidth, "FIXTURE",
		pmWidth, "PM",
		testsWidth, "TESTS",
	)
	_, _ = fmt.Fprintln(w, headerStyle.Render(header))

	for i, entry := range m {
		name := truncateName(entry.Name, nameWidth)

		tests := describeTests(entry)
		if tests == "none" {
			tests = dim.Render(tests)
		}

		row := fmt.Sprintf("%*d %-*s %-*s %-*s %s",
			indexWidth, i,
			nameWidth, name,
			fixtureWidth, entry.Fixture,
			pmWidth, string(entry.Config.EffectivePackageManager()),
			tests,
		)
		_, _ = fmt.Fprintln(w, row)
	}

	return nil
}

// truncateName shortens a name to width characters, replacing the tail
// with an ellipsis. Slicing runes rather than bytes keeps multi-byte
// names from being cut mid-sequence.
func truncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	return string(runes[:width-1]) + "…"
}

// describeTests summarizes the test suites an entry enables.
func describeTests(entry matrix.Entry) string {
	var parts []string
	for _, kind := range entry.Config.Tests {
		parts = append(parts, string(kind))
	}
	if entry.Config.Advanced.JestTests {
		parts = append(parts, "jest")
	}
	if entry.Config.Advanced.RNTLTests {
		parts = append(parts, "rntl")
	}
	if entry.Config.Advanced.RenderHookTests {
		parts = append(parts, "hooks")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
