package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipesmith/pipesmith/internal/extract"
	"github.com/pipesmith/pipesmith/internal/pipeline"
)

func fullTestConfig() *pipeline.Config {
	return &pipeline.Config{
		ProjectName:    "demo-app",
		PackageManager: pipeline.Yarn,
		Storage:        pipeline.GitHubRelease,
		BuildTypes:     []pipeline.BuildType{pipeline.BuildDev},
		Tests:          []pipeline.TestKind{pipeline.TestTypeScript, pipeline.TestESLint, pipeline.TestPrettier},
		Triggers:       []pipeline.Trigger{pipeline.TriggerPushMain},
		Advanced: pipeline.AdvancedOptions{
			JestTests:       true,
			RNTLTests:       true,
			RenderHookTests: true,
			Caching:         true,
			Notifications:   true,
		},
	}
}

func categories(commands []extract.Command) []extract.Category {
	out := make([]extract.Category, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.Category)
	}
	return out
}

func TestTestCommandsFullSuite(t *testing.T) {
	commands := extract.TestCommands(fullTestConfig())

	// Eight run steps: cache-dir, install, three static checks, three suites.
	assert.Equal(t, []extract.Category{
		extract.CategoryCacheDir,
		extract.CategoryInstall,
		extract.CategoryTypecheck,
		extract.CategoryLint,
		extract.CategoryFormat,
		extract.CategoryJest,
		extract.CategoryRNTL,
		extract.CategoryHooks,
	}, categories(commands))
}

func TestTestCommandsEmptyWithoutTestJob(t *testing.T) {
	cfg := &pipeline.Config{
		Storage:    pipeline.GitHubRelease,
		BuildTypes: []pipeline.BuildType{pipeline.BuildDev},
		Triggers:   []pipeline.Trigger{pipeline.TriggerPushMain},
	}
	assert.Empty(t, extract.TestCommands(cfg))
}

func TestBuildCommandsExcludeBuildsByDefault(t *testing.T) {
	cfg := fullTestConfig()

	commands := extract.BuildCommands(cfg, extract.BuildOptions{})
	for _, c := range commands {
		assert.NotEqual(t, extract.CategoryBuild, c.Category)
		assert.NotEqual(t, extract.CategoryOther, c.Category)
	}

	// Install-flavor commands survive the default filter.
	assert.Contains(t, categories(commands), extract.CategoryEASInstall)
	assert.Contains(t, categories(commands), extract.CategoryInstall)
}

func TestBuildCommandsIncludeBuilds(t *testing.T) {
	cfg := fullTestConfig()

	commands := extract.BuildCommands(cfg, extract.BuildOptions{IncludeBuildCommands: true})
	assert.Contains(t, categories(commands), extract.CategoryBuild)
}

func TestAllCommandsDropsFlaggedByDefault(t *testing.T) {
	cfg := fullTestConfig()

	commands := extract.AllCommands(cfg, extract.AllOptions{IncludeBuildCommands: true})
	for _, c := range commands {
		assert.False(t, c.HasPlatformExpression, "flagged command leaked: %s", c.Command)
	}

	withFlagged := extract.AllCommands(cfg, extract.AllOptions{
		IncludeBuildCommands: true,
		IncludeFlagged:       true,
	})
	assert.Greater(t, len(withFlagged), len(commands))
}

func TestAllCommandsMergesPhases(t *testing.T) {
	cfg := fullTestConfig()

	all := extract.AllCommands(cfg, extract.AllOptions{IncludeBuildCommands: true, IncludeFlagged: true})
	test := extract.TestCommands(cfg)
	build := extract.BuildCommands(cfg, extract.BuildOptions{IncludeBuildCommands: true})

	assert.Len(t, all, len(test)+len(build))
	// Test phase comes first.
	assert.Equal(t, test[0], all[0])
}

func TestPlatformExpressionFlag(t *testing.T) {
	cfg := fullTestConfig()

	commands := extract.TestCommands(cfg)
	var cacheDir *extract.Command
	for i := range commands {
		if commands[i].Category == extract.CategoryCacheDir {
			cacheDir = &commands[i]
		}
	}
	require.NotNil(t, cacheDir)

	// yarn's cache-dir step has no templating marker; npm-based steps that
	// embed ${{ ... }} expressions are flagged.
	assert.False(t, cacheDir.HasPlatformExpression)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		command string
		want    extract.Category
	}{
		{"yarn cache dir", "Get package manager cache directory", "yarn cache dir", extract.CategoryCacheDir},
		{"npm cache", "", "npm config get cache", extract.CategoryCacheDir},
		{"pnpm store", "", "pnpm store path", extract.CategoryCacheDir},
		{"eas cli install", "Install EAS CLI", "yarn global add eas-cli", extract.CategoryEASInstall},
		{"eas build", "Build development APK", "NODE_OPTIONS=--max-old-space-size=4096 eas build --platform android", extract.CategoryBuild},
		{"hooks by label", "Run render hook tests", "yarn jest --ci", extract.CategoryHooks},
		{"hooks by path", "", "npx jest --ci --testPathPattern='__tests__/hooks'", extract.CategoryHooks},
		{"rntl by label", "Run component tests", "yarn jest --ci", extract.CategoryRNTL},
		{"rntl by path", "", "npx jest --ci --testPathPattern='__tests__/components'", extract.CategoryRNTL},
		{"plain jest", "Run unit tests", "yarn jest --ci --passWithNoTests", extract.CategoryJest},
		{"typescript", "Type check", "yarn tsc --noEmit", extract.CategoryTypecheck},
		{"eslint", "Lint", "npx eslint .", extract.CategoryLint},
		{"prettier", "Check formatting", "pnpm prettier --check .", extract.CategoryFormat},
		{"yarn install", "Install dependencies", "yarn install --frozen-lockfile", extract.CategoryInstall},
		{"npm ci", "", "npm ci", extract.CategoryInstall},
		{"rclone install is not install", "Install rclone", "curl -fsSL https://rclone.org/install.sh | sudo bash", extract.CategoryOther},
		{"unknown", "Notify Slack", "curl -X POST ...", extract.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.Classify(tt.label, tt.command))
		})
	}
}
