package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipesmith/pipesmith/internal/pipeline"
)

func envNames(cfg *pipeline.Config) []string {
	w := pipeline.Compile(cfg)
	names := make([]string, 0, len(w.Env))
	for _, e := range w.Env {
		names = append(names, e.Name)
	}
	return names
}

func TestEnvAlwaysStartsWithExpoToken(t *testing.T) {
	for _, storage := range pipeline.StorageTypes() {
		cfg := &pipeline.Config{Storage: storage}
		names := envNames(cfg)
		require.NotEmpty(t, names)
		assert.Equal(t, "EXPO_TOKEN", names[0], "storage=%s", storage)
	}
}

func TestEnvPerStorageType(t *testing.T) {
	tests := []struct {
		storage pipeline.StorageType
		want    []string
	}{
		{pipeline.GitHubRelease, []string{"EXPO_TOKEN", "RELEASE_TOKEN"}},
		{pipeline.ZohoDrive, []string{"EXPO_TOKEN", "RCLONE_ZOHO_CLIENT_ID", "RCLONE_ZOHO_CLIENT_SECRET", "RCLONE_ZOHO_TOKEN"}},
		{pipeline.GoogleDrive, []string{"EXPO_TOKEN", "RCLONE_GDRIVE_CLIENT_ID", "RCLONE_GDRIVE_CLIENT_SECRET", "RCLONE_GDRIVE_TOKEN"}},
		{pipeline.CustomStorage, []string{"EXPO_TOKEN", "STORAGE_ENDPOINT", "STORAGE_ACCESS_KEY", "STORAGE_SECRET_KEY"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.storage), func(t *testing.T) {
			cfg := &pipeline.Config{Storage: tt.storage}
			assert.Equal(t, tt.want, envNames(cfg))
		})
	}
}

func TestEnvNoCrossContamination(t *testing.T) {
	cfg := &pipeline.Config{Storage: pipeline.ZohoDrive}
	names := envNames(cfg)

	assert.NotContains(t, names, "RELEASE_TOKEN")
	assert.NotContains(t, names, "RCLONE_GDRIVE_TOKEN")
	assert.NotContains(t, names, "STORAGE_ENDPOINT")
}

func TestEnvAdvancedOptionSecrets(t *testing.T) {
	cfg := &pipeline.Config{
		Storage: pipeline.GitHubRelease,
		Advanced: pipeline.AdvancedOptions{
			IOSSupport:          true,
			PublishToStores:     true,
			Notifications:       true,
			NotificationChannel: pipeline.ChannelSlack,
		},
	}
	names := envNames(cfg)

	assert.Equal(t, []string{
		"EXPO_TOKEN",
		"RELEASE_TOKEN",
		"APPLE_ID",
		"APPLE_APP_SPECIFIC_PASSWORD",
		"GOOGLE_SERVICE_ACCOUNT_KEY",
		"SLACK_WEBHOOK_URL",
	}, names)
	assert.NotContains(t, names, "DISCORD_WEBHOOK_URL")
}

func TestEnvValuesAreSecretReferences(t *testing.T) {
	cfg := &pipeline.Config{Storage: pipeline.GitHubRelease}
	w := pipeline.Compile(cfg)

	for _, e := range w.Env {
		assert.Equal(t, "${{ secrets."+e.Name+" }}", e.Value)
	}
}

func TestBuildJobID(t *testing.T) {
	assert.Equal(t, pipeline.JobBuildAndRelease, pipeline.BuildJobID(pipeline.GitHubRelease))
	assert.Equal(t, pipeline.JobBuildAndDeploy, pipeline.BuildJobID(pipeline.ZohoDrive))
	assert.Equal(t, pipeline.JobBuildAndDeploy, pipeline.BuildJobID(pipeline.GoogleDrive))
	assert.Equal(t, pipeline.JobBuildAndDeploy, pipeline.BuildJobID(pipeline.CustomStorage))
}

func TestCommandsFallsBackToYarn(t *testing.T) {
	cs := pipeline.Commands(pipeline.PackageManager("deno"))
	assert.Equal(t, "yarn install --frozen-lockfile", cs.Install)
}

func TestCommandsPerPackageManager(t *testing.T) {
	yarn := pipeline.Commands(pipeline.Yarn)
	assert.Equal(t, "yarn cache dir", yarn.CacheDir)
	assert.Equal(t, "yarn.lock", yarn.LockFile)

	npm := pipeline.Commands(pipeline.NPM)
	assert.Equal(t, "npm ci", npm.Install)
	assert.Equal(t, "npx tsc --noEmit", npm.TypeCheck)

	pnpm := pipeline.Commands(pipeline.PNPM)
	assert.Equal(t, "pnpm store path", pnpm.CacheDir)
	assert.Equal(t, "pnpm-lock.yaml", pnpm.LockFile)
}
