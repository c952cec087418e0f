// Package cli provides the command-line interface for pipesmith.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pipesmith/pipesmith/internal/config"
	"github.com/pipesmith/pipesmith/internal/constants"
	"github.com/pipesmith/pipesmith/internal/matrix"
	"github.com/pipesmith/pipesmith/internal/pipeline"
	"github.com/pipesmith/pipesmith/internal/workflow"
)

// matrixVerifyFlags holds flags specific to the matrix verify command.
type matrixVerifyFlags struct {
	// MatrixPath is the path to the persisted matrix JSON file.
	MatrixPath string
}

// entryProblem records a verification failure for one matrix entry.
type entryProblem struct {
	index int
	name  string
	err   error
}

// addMatrixVerifyCmd adds the verify subcommand to the matrix command.
func addMatrixVerifyCmd(parent *cobra.Command, _ *GlobalFlags) {
	flags := &matrixVerifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify that every matrix entry compiles to a valid workflow",
		Long: `Compile every entry of a persisted matrix and check the result
against the workflow schema. Entry names must be unique; duplicate
command signatures are reported as warnings.

Entries are verified concurrently.

Examples:
  pipesmith matrix verify
  pipesmith matrix verify --matrix matrix.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatrixVerify(cmd.Context(), flags, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&flags.MatrixPath, "matrix", constants.MatrixFileName, "matrix file")

	parent.AddCommand(cmd)
}

// runMatrixVerify executes the matrix verify command.
func runMatrixVerify(ctx context.Context, flags *matrixVerifyFlags, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	logger := GetLogger()

	m, err := matrix.Load(flags.MatrixPath)
	if err != nil {
		return err
	}

	if err := m.Validate(); err != nil {
		return err
	}

	problems := verifyEntries(ctx, m)
	warnDuplicateSignatures(m, w)

	if len(problems) == 0 {
		logger.Info().
			Str("matrix", flags.MatrixPath).
			Int("entries", len(m)).
			Msg("matrix verified")
		_, _ = fmt.Fprintf(w, "OK: %d entries verified\n", len(m))
		return nil
	}

	for _, p := range problems {
		_, _ = fmt.Fprintf(w, "entry %d (%s): %v\n", p.index, p.name, p.err)
	}
	return fmt.Errorf("matrix verification failed: %d of %d entries invalid", len(problems), len(m))
}

// verifyEntries compiles and validates every entry concurrently, returning
// problems ordered by entry index.
func verifyEntries(ctx context.Context, m matrix.Matrix) []entryProblem {
	var (
		mu       sync.Mutex
		problems []entryProblem
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, entry := range m {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err := verifyEntry(entry); err != nil {
				mu.Lock()
				problems = append(problems, entryProblem{index: i, name: entry.Name, err: err})
				mu.Unlock()
			}
			// Problems are collected, not returned, so one bad entry
			// does not cancel verification of the rest.
			return nil
		})
	}

	_ = g.Wait()

	sort.Slice(problems, func(a, b int) bool { return problems[a].index < problems[b].index })
	return problems
}

// verifyEntry compiles one entry and checks the compiled workflow.
func verifyEntry(entry matrix.Entry) error {
	cfg := entry.Config
	if err := config.Validate(&cfg); err != nil {
		return err
	}
	return workflow.Validate(pipeline.Compile(&cfg))
}

// warnDuplicateSignatures reports entries whose configurations produce
// identical test-phase command signatures.
func warnDuplicateSignatures(m matrix.Matrix, w io.Writer) {
	seen := make(map[string]string, len(m))
	for _, entry := range m {
		cfg := entry.Config
		sig := matrix.Signature(&cfg)
		if first, dup := seen[sig]; dup {
			_, _ = fmt.Fprintf(w, "warning: %s shares a command signature with %s\n", entry.Name, first)
			continue
		}
		seen[sig] = entry.Name
	}
}
