// Package harness replays extracted pipeline commands against fixture
// applications.
//
// SECURITY NOTE: The commands executed by this package are produced by the
// pipeline compiler from declarative configuration, the same trust model
// as running a project's own CI definition locally. The sh -c invocation
// is intentional: extracted commands use shell features (command
// substitution, output redirection) such as writing to $GITHUB_OUTPUT.
package harness

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// CommandRunner defines the interface for executing shell commands.
// This allows for testing by injecting mock implementations.
type CommandRunner interface {
	// Run executes a shell command in workDir with extra environment
	// variables appended to the inherited environment.
	Run(ctx context.Context, workDir, command string, env []string) (stdout, stderr string, exitCode int, err error)
}

// DefaultCommandRunner implements CommandRunner using os/exec.
type DefaultCommandRunner struct{}

// Run executes a shell command using sh -c.
func (r *DefaultCommandRunner) Run(ctx context.Context, workDir, command string, env []string) (stdout, stderr string, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command) //#nosec G204 -- commands come from the compiler's rule tables
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), env...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}

	return stdout, stderr, exitCode, err
}

// Ensure DefaultCommandRunner implements CommandRunner.
var _ CommandRunner = (*DefaultCommandRunner)(nil)
