package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipesmith/pipesmith/internal/extract"
)

func TestNewCommandsCmd(t *testing.T) {
	t.Parallel()

	cmd := newCommandsCmd(&GlobalFlags{})

	assert.Equal(t, "commands", cmd.Use)

	phaseFlag := cmd.Flags().Lookup("phase")
	require.NotNil(t, phaseFlag)
	assert.Equal(t, phaseTest, phaseFlag.DefValue)

	require.NotNil(t, cmd.Flags().Lookup("include-build"))
	require.NotNil(t, cmd.Flags().Lookup("include-flagged"))
}

func TestRunCommands_TestPhaseText(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	path := writeTestConfig(t, sampleConfigYAML)

	var buf bytes.Buffer
	flags := &commandsFlags{ConfigPath: path, Phase: phaseTest}

	err := runCommands(context.Background(), flags, &GlobalFlags{Output: OutputText}, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "install")
	assert.Contains(t, output, "typecheck")
	assert.Contains(t, output, "lint")
	assert.Contains(t, output, "jest")
	assert.NotContains(t, output, "eas build")
}

func TestRunCommands_TestPhaseJSON(t *testing.T) {
	path := writeTestConfig(t, sampleConfigYAML)

	var buf bytes.Buffer
	flags := &commandsFlags{ConfigPath: path, Phase: phaseTest}

	err := runCommands(context.Background(), flags, &GlobalFlags{Output: OutputJSON}, &buf)
	require.NoError(t, err)

	var commands []extract.Command
	require.NoError(t, json.Unmarshal(buf.Bytes(), &commands))
	assert.NotEmpty(t, commands)
	for _, cmd := range commands {
		assert.NotEmpty(t, cmd.Command)
		assert.NotEmpty(t, cmd.Category)
	}
}

func TestRunCommands_BuildPhaseExcludesBuildsByDefault(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	path := writeTestConfig(t, sampleConfigYAML)

	var buf bytes.Buffer
	flags := &commandsFlags{ConfigPath: path, Phase: phaseBuild}

	err := runCommands(context.Background(), flags, &GlobalFlags{Output: OutputText}, &buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "eas build")

	buf.Reset()
	flags.IncludeBuild = true
	err = runCommands(context.Background(), flags, &GlobalFlags{Output: OutputText}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "eas build")
}

func TestRunCommands_NoCommands(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	path := writeTestConfig(t, "project_name: bare\n")

	var buf bytes.Buffer
	flags := &commandsFlags{ConfigPath: path, Phase: phaseTest}

	err := runCommands(context.Background(), flags, &GlobalFlags{Output: OutputText}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No commands extracted.")
}

func TestRunCommands_NoCommandsJSON(t *testing.T) {
	path := writeTestConfig(t, "project_name: bare\n")

	var buf bytes.Buffer
	flags := &commandsFlags{ConfigPath: path, Phase: phaseTest}

	err := runCommands(context.Background(), flags, &GlobalFlags{Output: OutputJSON}, &buf)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", buf.String())
}

func TestRunCommands_InvalidPhase(t *testing.T) {
	path := writeTestConfig(t, sampleConfigYAML)

	var buf bytes.Buffer
	flags := &commandsFlags{ConfigPath: path, Phase: "deploy"}

	err := runCommands(context.Background(), flags, &GlobalFlags{Output: OutputText}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRunCommands_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := runCommands(ctx, &commandsFlags{Phase: phaseTest}, &GlobalFlags{}, &buf)
	require.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}
