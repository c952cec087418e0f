package pipeline

import (
	"fmt"

	"github.com/pipesmith/pipesmith/internal/workflow"
)

// buildProfile maps one build type to its EAS profile, artifact path, and
// step label.
type buildProfile struct {
	Profile  string
	Artifact string
	Label    string
}

// buildProfileTable is the single source of truth for android build steps.
var buildProfileTable = map[BuildType]buildProfile{
	BuildDev:     {Profile: "development", Artifact: "dist/app-development.apk", Label: "Build development APK"},
	BuildProdAPK: {Profile: "production-apk", Artifact: "dist/app-production.apk", Label: "Build production APK"},
	BuildProdAAB: {Profile: "production", Artifact: "dist/app-production.aab", Label: "Build production AAB"},
}

// Profile returns the EAS build profile for the given build type, or the
// empty string for unknown values.
func (b BuildType) Profile() string {
	return buildProfileTable[b].Profile
}

// buildJob emits the build job. Its identifier and publication steps are
// chosen by storage type; its needs chain attaches to the test job when
// one exists, otherwise directly to check-skip. iOS support switches the
// runner to a two-leg platform matrix with macOS on the iOS leg.
func buildJob(cfg *Config, hasTestJob bool) workflow.Job {
	pm := cfg.EffectivePackageManager()
	cs := Commands(pm)
	matrixed := cfg.Advanced.IOSSupport

	job := workflow.Job{
		ID:     BuildJobID(cfg.Storage),
		RunsOn: "ubuntu-latest",
		Needs:  []string{JobCheckSkip},
	}
	if hasTestJob {
		job.Needs = []string{JobTest}
	}
	if matrixed {
		job.RunsOn = "${{ matrix.os }}"
		job.Strategy = &workflow.Strategy{
			Matrix: workflow.MatrixSpec{
				Include: []workflow.MatrixInclude{
					{Platform: "android", OS: "ubuntu-latest"},
					{Platform: "ios", OS: "macos-latest"},
				},
			},
		}
	}

	steps := setupSteps(pm)
	steps = append(steps,
		workflow.Step{Name: "Install EAS CLI", Run: cs.GlobalEAS},
		workflow.Step{Name: "Install dependencies", Run: cs.Install},
	)
	if sync := syncSetupStep(cfg.Storage); sync != nil {
		steps = append(steps, *sync)
	}

	buildSteps, artifacts := artifactBuildSteps(cfg, matrixed)
	steps = append(steps, buildSteps...)
	steps = append(steps, publicationSteps(cfg, artifacts)...)
	steps = append(steps, publishSteps(cfg)...)
	steps = append(steps, notificationSteps(cfg)...)

	job.Steps = steps
	return job
}

// artifactBuildSteps emits one build step per selected build type in
// canonical order, plus iOS legs when iOS support is enabled. It returns
// the steps and the artifact paths they produce.
func artifactBuildSteps(cfg *Config, matrixed bool) ([]workflow.Step, []string) {
	var steps []workflow.Step
	var artifacts []string

	androidGuard := ""
	iosGuard := ""
	if matrixed {
		androidGuard = "matrix.platform == 'android'"
		iosGuard = "matrix.platform == 'ios'"
	}

	for _, bt := range BuildTypes() {
		if !cfg.HasBuildType(bt) {
			continue
		}
		p := buildProfileTable[bt]
		steps = append(steps, workflow.Step{
			Name: p.Label,
			If:   androidGuard,
			Run:  easBuildCommand("android", p.Profile, p.Artifact),
		})
		artifacts = append(artifacts, p.Artifact)
	}

	if cfg.Advanced.IOSSupport {
		if cfg.HasBuildType(BuildDev) {
			const artifact = "dist/app-development.ipa"
			steps = append(steps, workflow.Step{
				Name: "Build development iOS app",
				If:   iosGuard,
				Run:  easBuildCommand("ios", "development", artifact),
			})
			artifacts = append(artifacts, artifact)
		}
		if cfg.HasProductionBuild() {
			const artifact = "dist/app-production.ipa"
			steps = append(steps, workflow.Step{
				Name: "Build production iOS app",
				If:   iosGuard,
				Run:  easBuildCommand("ios", "production", artifact),
			})
			artifacts = append(artifacts, artifact)
		}
	}

	return steps, artifacts
}

// easBuildCommand renders one local EAS build invocation.
func easBuildCommand(platform, profile, output string) string {
	return fmt.Sprintf("%s eas build --platform %s --profile %s --local --non-interactive --output %s",
		memoryLimit, platform, profile, output)
}

// manualGate restricts a step to manually dispatched runs.
const manualGate = "github.event_name == 'workflow_dispatch'"

// publishSteps emits the Expo update and store submission steps, all
// gated on manual dispatch. The App Store leg additionally requires iOS
// support.
func publishSteps(cfg *Config) []workflow.Step {
	var steps []workflow.Step
	if cfg.Advanced.PublishToExpo {
		steps = append(steps, workflow.Step{
			Name: "Publish update to Expo",
			If:   manualGate,
			Run:  "eas update --branch production --non-interactive",
		})
	}
	if cfg.Advanced.PublishToStores {
		steps = append(steps, workflow.Step{
			Name: "Submit to Google Play",
			If:   manualGate,
			Run:  "eas submit --platform android --latest --non-interactive",
		})
		if cfg.Advanced.IOSSupport {
			steps = append(steps, workflow.Step{
				Name: "Submit to App Store",
				If:   manualGate,
				Run:  "eas submit --platform ios --latest --non-interactive",
			})
		}
	}
	return steps
}

// notificationSteps emits the Slack and Discord webhook steps chosen by
// the notification channel; absent when notifications are disabled.
func notificationSteps(cfg *Config) []workflow.Step {
	if !cfg.Advanced.Notifications {
		return nil
	}

	const status = "${{ github.workflow }} run #${{ github.run_number }} finished: ${{ job.status }}"
	channel := cfg.EffectiveChannel()

	var steps []workflow.Step
	if channel == ChannelSlack || channel == ChannelBoth {
		steps = append(steps, workflow.Step{
			Name: "Notify Slack",
			If:   "always()",
			Run:  fmt.Sprintf(`curl -X POST -H 'Content-type: application/json' --data '{"text":"%s"}' "$SLACK_WEBHOOK_URL"`, status),
		})
	}
	if channel == ChannelDiscord || channel == ChannelBoth {
		steps = append(steps, workflow.Step{
			Name: "Notify Discord",
			If:   "always()",
			Run:  fmt.Sprintf(`curl -X POST -H 'Content-type: application/json' --data '{"content":"%s"}' "$DISCORD_WEBHOOK_URL"`, status),
		})
	}
	return steps
}
