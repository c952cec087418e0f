// Package cli provides the command-line interface for pipesmith.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pipesmith/pipesmith/internal/constants"
	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/extract"
	"github.com/pipesmith/pipesmith/internal/harness"
	"github.com/pipesmith/pipesmith/internal/matrix"
	"github.com/pipesmith/pipesmith/internal/tui"
)

// runFlags holds flags specific to the run command.
type runFlags struct {
	// MatrixPath is the path to the persisted matrix JSON file.
	MatrixPath string
	// Index selects the matrix entry to run.
	Index int
	// FixturesDir is the directory containing fixture apps.
	FixturesDir string
	// ReportPath is the destination for the run report JSON. Empty skips
	// report persistence.
	ReportPath string
	// Timeout is the per-command timeout.
	Timeout time.Duration
	// IncludeBuild executes commands that trigger real external builds.
	IncludeBuild bool
	// ContinueOnFailure keeps executing past a failed command.
	ContinueOnFailure bool
}

// AddRunCommand adds the run command to the root command.
func AddRunCommand(root *cobra.Command, global *GlobalFlags) {
	root.AddCommand(newRunCmd(global))
}

func newRunCmd(global *GlobalFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay one matrix entry's commands against its fixture",
		Long: `Execute the commands extracted from one matrix entry against the
entry's fixture app, simulating the CI platform's output channels
($GITHUB_OUTPUT, $GITHUB_ENV) in a temporary directory.

Commands containing unresolved platform expressions are skipped, as are
commands that trigger real external builds unless --include-build is
set. Execution halts at the first failure unless --continue-on-failure
is set.

Examples:
  pipesmith run --index 0
  pipesmith run --matrix matrix.json --index 12 --fixtures ./fixtures
  pipesmith run --index 3 --continue-on-failure --report report.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd.Context(), flags, global, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&flags.MatrixPath, "matrix", constants.MatrixFileName, "matrix file")
	cmd.Flags().IntVarP(&flags.Index, "index", "i", 0, "matrix entry index")
	cmd.Flags().StringVar(&flags.FixturesDir, "fixtures", constants.FixturesDir, "directory containing fixture apps")
	cmd.Flags().StringVar(&flags.ReportPath, "report", "", "write the run report JSON to this file")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", harness.DefaultTimeout, "per-command timeout")
	cmd.Flags().BoolVar(&flags.IncludeBuild, "include-build", false, "execute commands that trigger real builds")
	cmd.Flags().BoolVar(&flags.ContinueOnFailure, "continue-on-failure", false, "keep executing past a failed command")

	return cmd
}

// runRun executes the run command.
func runRun(ctx context.Context, flags *runFlags, global *GlobalFlags, w io.Writer) error {
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

	entry, err := m.Entry(flags.Index)
	if err != nil {
		return errors.NewExitCode2Error(err)
	}

	// The harness decides which commands to skip, so extraction keeps
	// everything and reports skips in the results.
	cfg := entry.Config
	commands := extract.AllCommands(&cfg, extract.AllOptions{
		IncludeBuildCommands: true,
		IncludeFlagged:       true,
	})

	fixtureDir := filepath.Join(flags.FixturesDir, entry.Fixture)

	logger.Info().
		Str("entry", entry.Name).
		Str("fixture", fixtureDir).
		Int("commands", len(commands)).
		Msg("running matrix entry")

	executor := harness.NewExecutor(harness.Options{
		Timeout:           flags.Timeout,
		IncludeBuild:      flags.IncludeBuild,
		ContinueOnFailure: flags.ContinueOnFailure,
	})

	runCtx := logger.WithContext(ctx)
	report, runErr := executor.Run(runCtx, commands, fixtureDir)
	if report == nil {
		return runErr
	}

	if flags.ReportPath != "" {
		if err := writeReport(report, flags.ReportPath); err != nil {
			return err
		}
	}

	if global.Output == OutputJSON {
		if err := outputReportJSON(w, report); err != nil {
			return err
		}
	} else {
		outputReportText(w, entry.Name, report)
	}

	return runErr
}

// writeReport persists the run report as indented JSON.
func writeReport(report *harness.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // Reports are world-readable
		return errors.Wrapf(err, "failed to write report to %s", path)
	}
	return nil
}

// outputReportJSON writes the run report as indented JSON.
func outputReportJSON(w io.Writer, report *harness.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// outputReportText writes a human-readable run summary.
func outputReportText(w io.Writer, entryName string, report *harness.Report) {
	tui.CheckNoColor()

	passStyle := lipgloss.NewStyle().Foreground(tui.PassColor())
	failStyle := lipgloss.NewStyle().Foreground(tui.FailColor())
	dim := tui.DimStyle()

	const markerWidth = 4

	for _, result := range report.Results {
		var plain string
		style := dim
		switch result.Outcome {
		case harness.OutcomePassed:
			plain, style = "PASS", passStyle
		case harness.OutcomeFailed:
			plain, style = "FAIL", failStyle
		case harness.OutcomeSkipped:
			plain = "SKIP"
		}
		marker := style.Render(plain)
		// ANSI escape bytes count toward the printf width, so the styled
		// marker gets the offset added back to stay column-aligned.
		width := markerWidth + tui.ColorOffset(marker, plain)
		_, _ = fmt.Fprintf(w, "%-*s %s\n", width, marker, result.Command)
		if result.SkipReason != "" {
			_, _ = fmt.Fprintf(w, "     %s\n", dim.Render(result.SkipReason))
		}
	}

	verdict := passStyle.Render("success")
	if !report.Success {
		verdict = failStyle.Render("failure")
	}
	_, _ = fmt.Fprintf(w, "\n%s: %s (%d passed, %d failed, %d skipped in %dms)\n",
		entryName, verdict, report.Passed, report.Failed, report.Skipped, report.DurationMs)
}
