// Package cli provides the command-line interface for pipesmith.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipesmith/pipesmith/internal/config"
	"github.com/pipesmith/pipesmith/internal/constants"
	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/pipeline"
	"github.com/pipesmith/pipesmith/internal/workflow"
)

// generateFlags holds flags specific to the generate command.
type generateFlags struct {
	// ConfigPath is the path to the pipeline configuration file.
	ConfigPath string
	// OutPath is the destination for the rendered workflow YAML.
	// Empty writes to stdout.
	OutPath string
}

// AddGenerateCommand adds the generate command to the root command.
func AddGenerateCommand(root *cobra.Command, global *GlobalFlags) {
	root.AddCommand(newGenerateCmd(global))
}

func newGenerateCmd(_ *GlobalFlags) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a CI/CD workflow from a pipeline configuration",
		Long: `Compile a pipeline configuration into a complete GitHub Actions
workflow and write the rendered YAML.

The same configuration always produces byte-identical output.

Examples:
  pipesmith generate --config pipesmith.yaml
  pipesmith generate --config pipesmith.yaml --out .github/workflows/ci.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), flags, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", constants.DefaultConfigName, "pipeline configuration file")
	cmd.Flags().StringVar(&flags.OutPath, "out", "", "output file (default stdout)")

	return cmd
}

// runGenerate executes the generate command.
func runGenerate(ctx context.Context, flags *generateFlags, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	logger := GetLogger()

	cfg, err := loadConfig(flags.ConfigPath)
	if err != nil {
		return err
	}

	wf := pipeline.Compile(cfg)
	if err := workflow.Validate(wf); err != nil {
		return errors.Wrap(err, "compiled workflow failed validation")
	}

	rendered, err := workflow.Render(wf)
	if err != nil {
		return errors.Wrap(err, "failed to render workflow")
	}

	if flags.OutPath == "" {
		_, err = w.Write(rendered)
		return err
	}

	if err := os.WriteFile(flags.OutPath, rendered, 0o644); err != nil { //nolint:gosec // Workflow files are world-readable
		return errors.Wrapf(err, "failed to write workflow to %s", flags.OutPath)
	}

	logger.Info().
		Str("config", flags.ConfigPath).
		Str("out", flags.OutPath).
		Int("jobs", len(wf.Jobs)).
		Msg("workflow generated")

	_, _ = fmt.Fprintf(w, "Workflow written to %s\n", flags.OutPath)
	return nil
}

// loadConfig loads and validates a pipeline configuration, mapping user
// errors to exit code 2.
func loadConfig(path string) (*pipeline.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, errors.NewExitCode2Error(err)
	}
	return cfg, nil
}
