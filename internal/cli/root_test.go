package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipesmith/pipesmith/internal/errors"
)

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		info     BuildInfo
		expected string
	}{
		{
			name:     "all fields set",
			info:     BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-08-29"},
			expected: "1.2.3 (commit: abc1234, built: 2026-08-29)",
		},
		{
			name:     "empty fields use placeholders",
			info:     BuildInfo{},
			expected: "dev (commit: none, built: unknown)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, formatVersion(tc.info))
		})
	}
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})

	expected := []string{"generate", "commands", "matrix", "run"}
	for _, name := range expected {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "expected subcommand %q to be registered", name)
	}
}

func TestNewRootCmd_MatrixSubcommands(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		if sub.Name() == "matrix" {
			for _, child := range sub.Commands() {
				names[child.Name()] = true
			}
		}
	}

	require.NotEmpty(t, names)
	assert.True(t, names["generate"])
	assert.True(t, names["list"])
	assert.True(t, names["verify"])
}

func TestExecute_InvalidOutputFormat(t *testing.T) {
	t.Setenv("PIPESMITH_HOME", t.TempDir())

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})
	cmd.SilenceErrors = true
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--output", "xml"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestExecute_HelpWithoutArgs(t *testing.T) {
	t.Setenv("PIPESMITH_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{Version: "0.0.1"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "pipesmith")
	assert.Contains(t, out.String(), "Available Commands")
}

func TestExecute_UnknownCommand(t *testing.T) {
	t.Setenv("PIPESMITH_HOME", t.TempDir())

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})
	cmd.SilenceErrors = true
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"frobnicate"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}
