package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipesmith/pipesmith/internal/config"
	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/pipeline"
)

// writeConfig writes YAML content to a temp config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipesmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
project_name: demo-app
package_manager: pnpm
storage: zoho-drive
build_types:
  - dev
  - prod-aab
tests:
  - typescript
  - eslint
triggers:
  - push-main
  - manual
advanced:
  ios_support: true
  jest_tests: true
  caching: true
  notifications: true
  notification_channel: slack
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo-app", cfg.ProjectName)
	assert.Equal(t, pipeline.PNPM, cfg.PackageManager)
	assert.Equal(t, pipeline.ZohoDrive, cfg.Storage)
	assert.Equal(t, []pipeline.BuildType{pipeline.BuildDev, pipeline.BuildProdAAB}, cfg.BuildTypes)
	assert.Equal(t, []pipeline.TestKind{pipeline.TestTypeScript, pipeline.TestESLint}, cfg.Tests)
	assert.Equal(t, []pipeline.Trigger{pipeline.TriggerPushMain, pipeline.TriggerManual}, cfg.Triggers)
	assert.True(t, cfg.Advanced.IOSSupport)
	assert.True(t, cfg.Advanced.JestTests)
	assert.True(t, cfg.Advanced.Caching)
	assert.Equal(t, pipeline.ChannelSlack, cfg.Advanced.NotificationChannel)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "project_name: minimal\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, pipeline.DefaultPackageManager, cfg.PackageManager)
	assert.Equal(t, pipeline.GitHubRelease, cfg.Storage)
	assert.Empty(t, cfg.BuildTypes)
	assert.Empty(t, cfg.Tests)
	assert.Empty(t, cfg.Triggers)
	assert.False(t, cfg.Advanced.IOSSupport)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	cfg, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigNotFound)
	assert.Contains(t, err.Error(), path)
	assert.Nil(t, cfg)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "project_name: [unterminated\n")

	cfg, err := config.Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errors.ErrConfigNotFound)
	assert.Nil(t, cfg)
}

func TestLoadInvalidEnumValue(t *testing.T) {
	path := writeConfig(t, "package_manager: bower\n")

	cfg, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidPackageManager)
	assert.Contains(t, err.Error(), "bower")
	assert.Nil(t, cfg)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PIPESMITH_PACKAGE_MANAGER", "npm")
	path := writeConfig(t, "package_manager: yarn\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, pipeline.NPM, cfg.PackageManager)
}

func TestLoadEnvOverrideCommaSeparatedSlice(t *testing.T) {
	t.Setenv("PIPESMITH_TESTS", "typescript,prettier")
	path := writeConfig(t, "project_name: env-slices\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []pipeline.TestKind{pipeline.TestTypeScript, pipeline.TestPrettier}, cfg.Tests)
}

func TestLoadEnvOverrideSliceTrimsWhitespace(t *testing.T) {
	t.Setenv("PIPESMITH_BUILD_TYPES", "dev, prod-apk")
	t.Setenv("PIPESMITH_TRIGGERS", "push-main , manual")
	path := writeConfig(t, "project_name: env-slices\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []pipeline.BuildType{pipeline.BuildDev, pipeline.BuildProdAPK}, cfg.BuildTypes)
	assert.Equal(t, []pipeline.Trigger{pipeline.TriggerPushMain, pipeline.TriggerManual}, cfg.Triggers)
}
