package pipeline

import (
	"fmt"
	"path"

	"github.com/pipesmith/pipesmith/internal/workflow"
)

// Build job identifiers, chosen by storage type. Exactly one of the two
// appears in any compiled document.
const (
	JobCheckSkip       = "check-skip"
	JobTest            = "test"
	JobBuildAndRelease = "build-and-release"
	JobBuildAndDeploy  = "build-and-deploy"
)

// BuildJobID returns the build job identifier for the given storage type.
func BuildJobID(storage StorageType) string {
	if storage == GitHubRelease {
		return JobBuildAndRelease
	}
	return JobBuildAndDeploy
}

// storageSecrets maps each storage type to the exact secret names its
// publication steps require. No cross-contamination: only the selected
// type's secrets are injected into the environment block.
var storageSecrets = map[StorageType][]string{
	GitHubRelease: {"RELEASE_TOKEN"},
	ZohoDrive:     {"RCLONE_ZOHO_CLIENT_ID", "RCLONE_ZOHO_CLIENT_SECRET", "RCLONE_ZOHO_TOKEN"},
	GoogleDrive:   {"RCLONE_GDRIVE_CLIENT_ID", "RCLONE_GDRIVE_CLIENT_SECRET", "RCLONE_GDRIVE_TOKEN"},
	CustomStorage: {"STORAGE_ENDPOINT", "STORAGE_ACCESS_KEY", "STORAGE_SECRET_KEY"},
}

// rcloneRemotes maps drive storage types to their rclone remote names.
var rcloneRemotes = map[StorageType]struct {
	remote string
	label  string
}{
	ZohoDrive:   {remote: "zoho", label: "Zoho Drive"},
	GoogleDrive: {remote: "gdrive", label: "Google Drive"},
}

// secretRef renders a workflow secret reference.
func secretRef(name string) string {
	return fmt.Sprintf("${{ secrets.%s }}", name)
}

// buildEnv assembles the workflow environment block in fixed rule-table
// order: the EAS token, the selected storage type's secrets, then
// advanced-option secrets.
func buildEnv(cfg *Config) []workflow.EnvVar {
	env := []workflow.EnvVar{{Name: "EXPO_TOKEN", Value: secretRef("EXPO_TOKEN")}}

	for _, name := range storageSecrets[cfg.Storage] {
		env = append(env, workflow.EnvVar{Name: name, Value: secretRef(name)})
	}

	if cfg.Advanced.IOSSupport {
		env = append(env,
			workflow.EnvVar{Name: "APPLE_ID", Value: secretRef("APPLE_ID")},
			workflow.EnvVar{Name: "APPLE_APP_SPECIFIC_PASSWORD", Value: secretRef("APPLE_APP_SPECIFIC_PASSWORD")},
		)
	}
	if cfg.Advanced.PublishToStores {
		env = append(env, workflow.EnvVar{Name: "GOOGLE_SERVICE_ACCOUNT_KEY", Value: secretRef("GOOGLE_SERVICE_ACCOUNT_KEY")})
	}
	if cfg.Advanced.Notifications {
		channel := cfg.EffectiveChannel()
		if channel == ChannelSlack || channel == ChannelBoth {
			env = append(env, workflow.EnvVar{Name: "SLACK_WEBHOOK_URL", Value: secretRef("SLACK_WEBHOOK_URL")})
		}
		if channel == ChannelDiscord || channel == ChannelBoth {
			env = append(env, workflow.EnvVar{Name: "DISCORD_WEBHOOK_URL", Value: secretRef("DISCORD_WEBHOOK_URL")})
		}
	}
	return env
}

// syncSetupStep returns the cloud-sync setup step for the storage type, or
// nil when the type publishes without one (github-release).
func syncSetupStep(storage StorageType) *workflow.Step {
	switch storage {
	case ZohoDrive, GoogleDrive:
		return &workflow.Step{
			Name: "Install rclone",
			Run:  "curl -fsSL https://rclone.org/install.sh | sudo bash",
		}
	case CustomStorage:
		return &workflow.Step{
			Name: "Verify custom storage configuration",
			Run:  `test -n "$STORAGE_ENDPOINT"`,
		}
	default:
		return nil
	}
}

// publicationSteps returns the final artifact-publication steps: a single
// release-creation step for github-release, or one upload step per
// artifact for the other storage types.
func publicationSteps(cfg *Config, artifacts []string) []workflow.Step {
	switch cfg.Storage {
	case GitHubRelease:
		return []workflow.Step{{
			Name: "Create GitHub release",
			Uses: "softprops/action-gh-release@v2",
			With: []workflow.WithParam{
				{Name: "tag_name", Value: "v${{ github.run_number }}"},
				{Name: "files", Value: "dist/*"},
			},
			Env: []workflow.EnvVar{{Name: "GITHUB_TOKEN", Value: secretRef("RELEASE_TOKEN")}},
		}}
	case ZohoDrive, GoogleDrive:
		dest := rcloneRemotes[cfg.Storage]
		steps := make([]workflow.Step, 0, len(artifacts))
		for _, artifact := range artifacts {
			steps = append(steps, workflow.Step{
				Name: fmt.Sprintf("Upload %s to %s", path.Base(artifact), dest.label),
				Run:  fmt.Sprintf("rclone copy %s %s:releases/", artifact, dest.remote),
			})
		}
		return steps
	case CustomStorage:
		steps := make([]workflow.Step, 0, len(artifacts))
		for _, artifact := range artifacts {
			steps = append(steps, workflow.Step{
				Name: fmt.Sprintf("Upload %s to custom storage", path.Base(artifact)),
				Run:  fmt.Sprintf(`curl -fT %s "$STORAGE_ENDPOINT/" -u "$STORAGE_ACCESS_KEY:$STORAGE_SECRET_KEY"`, artifact),
			})
		}
		return steps
	default:
		return nil
	}
}
