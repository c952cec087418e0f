package harness

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pipesmith/pipesmith/internal/constants"
	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/extract"
	"github.com/pipesmith/pipesmith/internal/logging"
)

// DefaultTimeout is the default per-command timeout.
const DefaultTimeout = constants.DefaultCommandTimeout

// Skip reasons reported for commands the harness refuses to execute.
const (
	skipReasonBuild    = "build command excluded"
	skipReasonPlatform = "unresolved platform expression"
)

// Options configures an Executor.
type Options struct {
	// Timeout is the per-command timeout. Zero selects DefaultTimeout.
	Timeout time.Duration

	// IncludeBuild executes commands categorized as build or other. These
	// trigger real external builds and are skipped by default.
	IncludeBuild bool

	// ContinueOnFailure keeps executing past a failed command instead of
	// halting the remaining list.
	ContinueOnFailure bool
}

// Executor replays extracted commands sequentially against a fixture
// directory.
type Executor struct {
	runner CommandRunner
	opts   Options
}

// NewExecutor creates an executor with the default command runner.
func NewExecutor(opts Options) *Executor {
	return NewExecutorWithRunner(opts, &DefaultCommandRunner{})
}

// NewExecutorWithRunner creates an executor with a custom runner (for testing).
func NewExecutorWithRunner(opts Options, runner CommandRunner) *Executor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Executor{runner: runner, opts: opts}
}

// Run replays the commands against fixtureDir. Commands flagged with
// unresolved platform expressions are skipped, as are build-category
// commands unless IncludeBuild is set. Execution halts at the first
// failure unless ContinueOnFailure is set. A temporary directory backing
// the simulated platform output channels ($GITHUB_OUTPUT, $GITHUB_ENV) is
// created before the first command and removed on every exit path.
//
// The returned report is always non-nil and covers everything executed
// before the error, if any.
func (e *Executor) Run(ctx context.Context, commands []extract.Command, fixtureDir string) (*Report, error) {
	log := zerolog.Ctx(ctx)
	report := &Report{RunID: uuid.NewString(), Fixture: fixtureDir}
	startTime := time.Now()
	defer func() {
		report.DurationMs = time.Since(startTime).Milliseconds()
		report.Success = report.Failed == 0
	}()

	if _, err := os.Stat(fixtureDir); os.IsNotExist(err) {
		return report, fmt.Errorf("%w: %s", errors.ErrFixtureNotFound, fixtureDir)
	}

	env, cleanup, err := outputChannels()
	if err != nil {
		return report, err
	}
	defer cleanup()

	log.Info().
		Str("run_id", report.RunID).
		Str("fixture", fixtureDir).
		Int("total_commands", len(commands)).
		Msg("starting harness run")

	var firstFailure error
	for i, cmd := range commands {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		if reason := e.skipReason(cmd); reason != "" {
			report.record(skippedResult(cmd, reason))
			log.Debug().
				Str("run_id", report.RunID).
				Str("command", cmd.Command).
				Str("reason", reason).
				Msg("skipping command")
			continue
		}

		result, runErr := e.runSingle(ctx, cmd, fixtureDir, env, i+1, len(commands))
		report.record(result)
		if runErr != nil {
			if stderrors.Is(runErr, context.Canceled) || stderrors.Is(runErr, context.DeadlineExceeded) {
				return report, runErr
			}
			if firstFailure == nil {
				firstFailure = runErr
			}
			if !e.opts.ContinueOnFailure {
				return report, runErr
			}
		}
	}

	log.Info().
		Str("run_id", report.RunID).
		Int("passed", report.Passed).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("harness run finished")

	return report, firstFailure
}

// skipReason returns a non-empty reason when the command must not execute.
func (e *Executor) skipReason(cmd extract.Command) string {
	if cmd.HasPlatformExpression {
		return skipReasonPlatform
	}
	if (cmd.Category == extract.CategoryBuild || cmd.Category == extract.CategoryOther) && !e.opts.IncludeBuild {
		return skipReasonBuild
	}
	return ""
}

// runSingle executes one command with timeout handling.
func (e *Executor) runSingle(ctx context.Context, cmd extract.Command, workDir string, env []string, num, total int) (Result, error) {
	log := zerolog.Ctx(ctx)
	startTime := time.Now()

	log.Info().
		Str("command", cmd.Command).
		Str("category", string(cmd.Category)).
		Int("command_num", num).
		Int("total_commands", total).
		Msg("executing command")

	cmdCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	stdout, stderr, exitCode, runErr := e.runner.Run(cmdCtx, workDir, cmd.Command, env)

	completedAt := time.Now()
	result := Result{
		Label:       cmd.Label,
		Command:     cmd.Command,
		Category:    cmd.Category,
		ExitCode:    exitCode,
		Stdout:      stdout,
		Stderr:      stderr,
		DurationMs:  completedAt.Sub(startTime).Milliseconds(),
		StartedAt:   startTime,
		CompletedAt: completedAt,
	}

	if stderrors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		result.Outcome = OutcomeFailed
		result.Error = "command timed out"
		log.Error().
			Str("command", cmd.Command).
			Int64("duration_ms", result.DurationMs).
			Msg("command timed out")
		return result, errors.ErrCommandTimeout
	}
	if ctx.Err() != nil {
		result.Outcome = OutcomeFailed
		result.Error = "context canceled"
		return result, ctx.Err()
	}
	if runErr != nil || exitCode != 0 {
		result.Outcome = OutcomeFailed
		if runErr != nil {
			result.Error = runErr.Error()
		} else {
			result.Error = fmt.Sprintf("exit code %d", exitCode)
		}
		log.Error().
			Str("command", cmd.Command).
			Int("exit_code", exitCode).
			Str("stderr", logging.SafeValue("stderr", stderr)).
			Msg("command failed")
		return result, fmt.Errorf("%w: %s", errors.ErrCommandFailed, cmd.Command)
	}

	result.Outcome = OutcomePassed
	log.Info().
		Str("command", cmd.Command).
		Int64("duration_ms", result.DurationMs).
		Msg("command passed")
	return result, nil
}

// skippedResult builds the result record for a command the harness did
// not execute.
func skippedResult(cmd extract.Command, reason string) Result {
	now := time.Now()
	return Result{
		Label:       cmd.Label,
		Command:     cmd.Command,
		Category:    cmd.Category,
		Outcome:     OutcomeSkipped,
		SkipReason:  reason,
		StartedAt:   now,
		CompletedAt: now,
	}
}

// outputChannels creates the temporary directory simulating the CI
// platform's output channels and returns the environment entries pointing
// at it. The cleanup function removes the directory and is safe to call
// on every exit path.
func outputChannels() ([]string, func(), error) {
	dir, err := os.MkdirTemp("", "pipesmith-run-")
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create output channel directory")
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	outputFile := filepath.Join(dir, "github_output")
	envFile := filepath.Join(dir, "github_env")
	for _, path := range []string{outputFile, envFile} {
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			cleanup()
			return nil, nil, errors.Wrap(err, "failed to create output channel file")
		}
	}

	env := []string{
		"GITHUB_OUTPUT=" + outputFile,
		"GITHUB_ENV=" + envFile,
	}
	return env, cleanup, nil
}
