// Package extract derives the executable command list implied by a
// compiled pipeline.
//
// Extraction compiles the configuration internally, walks the resulting
// test and build jobs, and classifies every shell-command step into a
// category using ordered heuristics over the step label and command text.
// Results are derived fresh on every call and never cached across
// configurations.
package extract

import (
	"strings"

	"github.com/pipesmith/pipesmith/internal/pipeline"
	"github.com/pipesmith/pipesmith/internal/workflow"
)

// Category classifies an extracted command by the tool it exercises.
type Category string

// Command categories, most specific first in classification order.
const (
	CategoryInstall    Category = "install"
	CategoryTypecheck  Category = "typecheck"
	CategoryLint       Category = "lint"
	CategoryFormat     Category = "format"
	CategoryJest       Category = "jest"
	CategoryRNTL       Category = "rntl"
	CategoryHooks      Category = "hooks"
	CategoryCacheDir   Category = "cache-dir"
	CategoryEASInstall Category = "eas-install"
	CategoryBuild      Category = "build"
	CategoryOther      Category = "other"
)

// Command is one executable command extracted from a compiled pipeline.
type Command struct {
	// Label is the step name the command was extracted from.
	Label string `json:"label"`

	// Command is the literal shell command text.
	Command string `json:"command"`

	// Category classifies the command.
	Category Category `json:"category"`

	// HasPlatformExpression marks commands containing an unresolved
	// templating expression. These cannot run outside the CI platform and
	// must be filtered before dry-run execution.
	HasPlatformExpression bool `json:"has_platform_expression"`
}

// TestCommands extracts the test-phase commands of a configuration: every
// shell-command step of the compiled test job, in step order. A
// configuration without a test job yields an empty list.
func TestCommands(cfg *pipeline.Config) []Command {
	w := pipeline.Compile(cfg)
	job := w.FindJob(pipeline.JobTest)
	if job == nil {
		return nil
	}
	return fromSteps(job.Steps, func(Category) bool { return true })
}

// BuildOptions controls build-phase extraction.
type BuildOptions struct {
	// IncludeBuildCommands keeps commands categorized as build or other.
	// These trigger real external builds and are skipped by default.
	IncludeBuildCommands bool
}

// BuildCommands extracts the build-phase commands of a configuration from
// its compiled build job. Build and other categories are excluded unless
// explicitly requested.
func BuildCommands(cfg *pipeline.Config, opts BuildOptions) []Command {
	w := pipeline.Compile(cfg)
	job := w.FindJob(pipeline.BuildJobID(cfg.Storage))
	if job == nil {
		return nil
	}
	return fromSteps(job.Steps, func(c Category) bool {
		if c == CategoryBuild || c == CategoryOther {
			return opts.IncludeBuildCommands
		}
		return true
	})
}

// AllOptions controls merged extraction.
type AllOptions struct {
	// IncludeBuildCommands keeps build/other commands in the build phase.
	IncludeBuildCommands bool

	// IncludeFlagged keeps commands containing unresolved platform
	// expressions. Dropped by default.
	IncludeFlagged bool
}

// AllCommands merges the test-phase and build-phase command lists. By
// default, commands flagged with unresolved platform expressions are
// dropped since they cannot execute outside the originating CI platform.
func AllCommands(cfg *pipeline.Config, opts AllOptions) []Command {
	merged := append(TestCommands(cfg), BuildCommands(cfg, BuildOptions{IncludeBuildCommands: opts.IncludeBuildCommands})...)
	if opts.IncludeFlagged {
		return merged
	}
	kept := merged[:0]
	for _, cmd := range merged {
		if !cmd.HasPlatformExpression {
			kept = append(kept, cmd)
		}
	}
	return kept
}

// fromSteps extracts and classifies the shell-command steps, keeping
// those whose category passes the filter.
func fromSteps(steps []workflow.Step, keep func(Category) bool) []Command {
	var commands []Command
	for _, step := range steps {
		if !step.IsRun() {
			continue
		}
		category := Classify(step.Name, step.Run)
		if !keep(category) {
			continue
		}
		commands = append(commands, Command{
			Label:                 step.Name,
			Command:               step.Run,
			Category:              category,
			HasPlatformExpression: hasPlatformExpression(step.Run),
		})
	}
	return commands
}

// Classify categorizes a command using ordered heuristics over the step
// label and command text. Rules run most specific first: a step whose
// label mentions hooks is hooks even though its command text also matches
// the generic jest pattern.
func Classify(label, command string) Category {
	labelLower := strings.ToLower(label)

	switch {
	case strings.Contains(command, "cache dir"),
		strings.Contains(command, "config get cache"),
		strings.Contains(command, "store path"),
		strings.Contains(labelLower, "cache directory"):
		return CategoryCacheDir
	case strings.Contains(command, "eas-cli"):
		return CategoryEASInstall
	case strings.Contains(command, "eas build"):
		return CategoryBuild
	case strings.Contains(labelLower, "hook"),
		strings.Contains(command, "__tests__/hooks"):
		return CategoryHooks
	case strings.Contains(labelLower, "component"),
		strings.Contains(command, "__tests__/components"):
		return CategoryRNTL
	case strings.Contains(command, "jest"):
		return CategoryJest
	case strings.Contains(command, "tsc"):
		return CategoryTypecheck
	case strings.Contains(command, "eslint"):
		return CategoryLint
	case strings.Contains(command, "prettier"):
		return CategoryFormat
	case strings.Contains(labelLower, "install dependencies"),
		strings.Contains(command, "--frozen-lockfile"),
		strings.Contains(command, "npm ci"):
		return CategoryInstall
	default:
		return CategoryOther
	}
}

// hasPlatformExpression reports whether the command text contains a
// bracketed double-brace templating marker.
func hasPlatformExpression(command string) bool {
	return strings.Contains(command, "${{")
}
