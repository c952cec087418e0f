// Package pipeline implements the configuration-to-workflow compiler.
//
// A Config describes the desired CI/CD behavior of a React Native / Expo
// project: package manager, artifact storage, static checks, test suites,
// triggers, and advanced options. Compile maps a Config to a workflow
// document through fixed rule tables; for one Config the output is
// byte-identical across calls, which downstream signature computation and
// snapshot tests depend on.
package pipeline

// PackageManager selects the JavaScript package manager commands are
// routed through.
type PackageManager string

// Supported package managers.
const (
	Yarn PackageManager = "yarn"
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"

	// DefaultPackageManager is used when a configuration leaves the
	// package manager unset.
	DefaultPackageManager = Yarn
)

// PackageManagers returns all supported package managers in canonical order.
func PackageManagers() []PackageManager {
	return []PackageManager{Yarn, NPM, PNPM}
}

// Valid reports whether the package manager is a supported value.
func (p PackageManager) Valid() bool {
	return p == Yarn || p == NPM || p == PNPM
}

// StorageType selects where build artifacts are published.
type StorageType string

// Supported storage/distribution types.
const (
	GitHubRelease StorageType = "github-release"
	ZohoDrive     StorageType = "zoho-drive"
	GoogleDrive   StorageType = "google-drive"
	CustomStorage StorageType = "custom"
)

// StorageTypes returns all supported storage types in canonical order.
func StorageTypes() []StorageType {
	return []StorageType{GitHubRelease, ZohoDrive, GoogleDrive, CustomStorage}
}

// Valid reports whether the storage type is a supported value.
func (s StorageType) Valid() bool {
	switch s {
	case GitHubRelease, ZohoDrive, GoogleDrive, CustomStorage:
		return true
	default:
		return false
	}
}

// BuildType selects one build artifact flavor.
type BuildType string

// Supported build types.
const (
	BuildDev     BuildType = "dev"
	BuildProdAPK BuildType = "prod-apk"
	BuildProdAAB BuildType = "prod-aab"
)

// BuildTypes returns all supported build types in canonical order. Rule
// tables iterate this order, never the configuration's own collection
// order, so emitted steps are stable.
func BuildTypes() []BuildType {
	return []BuildType{BuildDev, BuildProdAPK, BuildProdAAB}
}

// Valid reports whether the build type is a supported value.
func (b BuildType) Valid() bool {
	return b == BuildDev || b == BuildProdAPK || b == BuildProdAAB
}

// TestKind selects one static check in the test job.
type TestKind string

// Supported test kinds.
const (
	TestTypeScript TestKind = "typescript"
	TestESLint     TestKind = "eslint"
	TestPrettier   TestKind = "prettier"
)

// TestKinds returns all supported test kinds in canonical order.
func TestKinds() []TestKind {
	return []TestKind{TestTypeScript, TestESLint, TestPrettier}
}

// Valid reports whether the test kind is a supported value.
func (t TestKind) Valid() bool {
	return t == TestTypeScript || t == TestESLint || t == TestPrettier
}

// Trigger selects one workflow trigger.
type Trigger string

// Supported triggers.
const (
	TriggerPushMain    Trigger = "push-main"
	TriggerPullRequest Trigger = "pull-request"
	TriggerManual      Trigger = "manual"
)

// Triggers returns all supported triggers in canonical order.
func Triggers() []Trigger {
	return []Trigger{TriggerPushMain, TriggerPullRequest, TriggerManual}
}

// Valid reports whether the trigger is a supported value.
func (t Trigger) Valid() bool {
	return t == TriggerPushMain || t == TriggerPullRequest || t == TriggerManual
}

// NotificationChannel selects where build notifications are delivered.
type NotificationChannel string

// Supported notification channels.
const (
	ChannelSlack   NotificationChannel = "slack"
	ChannelDiscord NotificationChannel = "discord"
	ChannelBoth    NotificationChannel = "both"

	// DefaultNotificationChannel is used when notifications are enabled
	// but no channel is configured.
	DefaultNotificationChannel = ChannelBoth
)

// Valid reports whether the notification channel is a supported value.
func (c NotificationChannel) Valid() bool {
	return c == ChannelSlack || c == ChannelDiscord || c == ChannelBoth
}

// AdvancedOptions holds the boolean feature flags and the notification
// channel of a configuration.
type AdvancedOptions struct {
	IOSSupport          bool                `json:"ios_support" yaml:"ios_support" mapstructure:"ios_support"`
	PublishToExpo       bool                `json:"publish_to_expo" yaml:"publish_to_expo" mapstructure:"publish_to_expo"`
	PublishToStores     bool                `json:"publish_to_stores" yaml:"publish_to_stores" mapstructure:"publish_to_stores"`
	JestTests           bool                `json:"jest_tests" yaml:"jest_tests" mapstructure:"jest_tests"`
	RNTLTests           bool                `json:"rntl_tests" yaml:"rntl_tests" mapstructure:"rntl_tests"`
	RenderHookTests     bool                `json:"render_hook_tests" yaml:"render_hook_tests" mapstructure:"render_hook_tests"`
	Caching             bool                `json:"caching" yaml:"caching" mapstructure:"caching"`
	Notifications       bool                `json:"notifications" yaml:"notifications" mapstructure:"notifications"`
	NotificationChannel NotificationChannel `json:"notification_channel,omitempty" yaml:"notification_channel" mapstructure:"notification_channel"`
}

// Config is the immutable input to compilation. Compile never mutates it;
// all accessors treat collections as sets whose insertion order is
// irrelevant.
type Config struct {
	ProjectName    string          `json:"project_name" yaml:"project_name" mapstructure:"project_name"`
	PackageManager PackageManager  `json:"package_manager" yaml:"package_manager" mapstructure:"package_manager"`
	Storage        StorageType     `json:"storage" yaml:"storage" mapstructure:"storage"`
	BuildTypes     []BuildType     `json:"build_types" yaml:"build_types" mapstructure:"build_types"`
	Tests          []TestKind      `json:"tests" yaml:"tests" mapstructure:"tests"`
	Triggers       []Trigger       `json:"triggers" yaml:"triggers" mapstructure:"triggers"`
	Advanced       AdvancedOptions `json:"advanced" yaml:"advanced" mapstructure:"advanced"`
}

// EffectivePackageManager returns the configured package manager, or the
// default when unset or unknown. Compilation must not fail for any input,
// so unknown values degrade to the default rather than erroring.
func (c *Config) EffectivePackageManager() PackageManager {
	if c.PackageManager.Valid() {
		return c.PackageManager
	}
	return DefaultPackageManager
}

// EffectiveChannel returns the configured notification channel, defaulting
// to both when notifications are enabled and no channel is set.
func (c *Config) EffectiveChannel() NotificationChannel {
	if c.Advanced.NotificationChannel.Valid() {
		return c.Advanced.NotificationChannel
	}
	return DefaultNotificationChannel
}

// HasBuildType reports set membership regardless of insertion order.
func (c *Config) HasBuildType(b BuildType) bool {
	for _, t := range c.BuildTypes {
		if t == b {
			return true
		}
	}
	return false
}

// HasTest reports set membership regardless of insertion order.
func (c *Config) HasTest(k TestKind) bool {
	for _, t := range c.Tests {
		if t == k {
			return true
		}
	}
	return false
}

// HasTrigger reports set membership regardless of insertion order.
func (c *Config) HasTrigger(t Trigger) bool {
	for _, tr := range c.Triggers {
		if tr == t {
			return true
		}
	}
	return false
}

// WantsTestJob reports whether compilation emits a test job: at least one
// test kind is selected or one of the test flags is enabled.
func (c *Config) WantsTestJob() bool {
	return len(c.Tests) > 0 ||
		c.Advanced.JestTests ||
		c.Advanced.RNTLTests ||
		c.Advanced.RenderHookTests
}

// HasProductionBuild reports whether any production build type is selected.
func (c *Config) HasProductionBuild() bool {
	return c.HasBuildType(BuildProdAPK) || c.HasBuildType(BuildProdAAB)
}
