// Package cli provides the command-line interface for pipesmith.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipesmith/pipesmith/internal/constants"
	"github.com/pipesmith/pipesmith/internal/extract"
	"github.com/pipesmith/pipesmith/internal/tui"
)

// commandsFlags holds flags specific to the commands command.
type commandsFlags struct {
	// ConfigPath is the path to the pipeline configuration file.
	ConfigPath string
	// Phase selects which commands to extract: test, build, or all.
	Phase string
	// IncludeBuild keeps commands that trigger real external builds.
	IncludeBuild bool
	// IncludeFlagged keeps commands with unresolved platform expressions.
	IncludeFlagged bool
}

// Extraction phases accepted by the --phase flag.
const (
	phaseTest  = "test"
	phaseBuild = "build"
	phaseAll   = "all"
)

// AddCommandsCommand adds the commands command to the root command.
func AddCommandsCommand(root *cobra.Command, global *GlobalFlags) {
	root.AddCommand(newCommandsCmd(global))
}

func newCommandsCmd(global *GlobalFlags) *cobra.Command {
	flags := &commandsFlags{}

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List the executable commands a configuration implies",
		Long: `Extract and classify the shell commands the compiled pipeline would
run, without generating the workflow file.

The test phase lists every command of the test job. The build phase
excludes commands that trigger real external builds unless
--include-build is set. Commands containing unresolved platform
expressions are dropped from the merged list unless --include-flagged
is set.

Examples:
  pipesmith commands --config pipesmith.yaml
  pipesmith commands --config pipesmith.yaml --phase build --include-build
  pipesmith commands --config pipesmith.yaml --phase all --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommands(cmd.Context(), flags, global, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", constants.DefaultConfigName, "pipeline configuration file")
	cmd.Flags().StringVar(&flags.Phase, "phase", phaseTest, "extraction phase (test|build|all)")
	cmd.Flags().BoolVar(&flags.IncludeBuild, "include-build", false, "include commands that trigger real builds")
	cmd.Flags().BoolVar(&flags.IncludeFlagged, "include-flagged", false, "include commands with unresolved platform expressions")

	return cmd
}

// runCommands executes the commands command.
func runCommands(ctx context.Context, flags *commandsFlags, global *GlobalFlags, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cfg, err := loadConfig(flags.ConfigPath)
	if err != nil {
		return err
	}

	var commands []extract.Command
	switch flags.Phase {
	case phaseTest:
		commands = extract.TestCommands(cfg)
	case phaseBuild:
		commands = extract.BuildCommands(cfg, extract.BuildOptions{IncludeBuildCommands: flags.IncludeBuild})
	case phaseAll:
		commands = extract.AllCommands(cfg, extract.AllOptions{
			IncludeBuildCommands: flags.IncludeBuild,
			IncludeFlagged:       flags.IncludeFlagged,
		})
	default:
		return fmt.Errorf("invalid argument %q for --phase: must be one of test, build, all", flags.Phase)
	}

	if global.Output == OutputJSON {
		return outputCommandsJSON(w, commands)
	}
	return outputCommandsText(w, commands)
}

// outputCommandsJSON writes the extracted commands as a JSON array.
func outputCommandsJSON(w io.Writer, commands []extract.Command) error {
	if commands == nil {
		commands = []extract.Command{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(commands)
}

// outputCommandsText writes the extracted commands as aligned text.
func outputCommandsText(w io.Writer, commands []extract.Command) error {
	if len(commands) == 0 {
		_, _ = fmt.Fprintln(w, "No commands extracted.")
		return nil
	}

	tui.CheckNoColor()
	dim := tui.DimStyle()

	const categoryWidth = 12
	for _, cmd := range commands {
		flag := ""
		if cmd.HasPlatformExpression {
			flag = dim.Render(" [platform expression]")
		}
		_, _ = fmt.Fprintf(w, "%-*s %s%s\n", categoryWidth, cmd.Category, cmd.Command, flag)
	}
	return nil
}
