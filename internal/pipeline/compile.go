package pipeline

import (
	"fmt"

	"github.com/pipesmith/pipesmith/internal/workflow"
)

// memoryLimit is the fixed Node heap flag carried by every build step.
// Local EAS builds of React Native projects exhaust the default heap.
const memoryLimit = "NODE_OPTIONS=--max-old-space-size=4096"

// skipMarker aborts the pipeline when present in the commit message.
const skipMarker = "[skip ci]"

// defaultProjectName is used when a configuration leaves the name empty.
const defaultProjectName = "mobile-app"

// Compile maps a configuration to a workflow document. It is a pure
// function: it never mutates cfg, never fails for any value inside the
// configuration domain, and produces identical output on every call.
// Empty collections degrade to a document with fewer jobs and steps.
func Compile(cfg *Config) *workflow.Workflow {
	name := cfg.ProjectName
	if name == "" {
		name = defaultProjectName
	}

	w := &workflow.Workflow{
		Name: name + " CI/CD",
		On:   compileTriggers(cfg),
		Env:  buildEnv(cfg),
	}

	w.Jobs = append(w.Jobs, checkSkipJob())

	hasTestJob := cfg.WantsTestJob()
	if hasTestJob {
		w.Jobs = append(w.Jobs, testJob(cfg))
	}

	w.Jobs = append(w.Jobs, buildJob(cfg, hasTestJob))

	return w
}

// compileTriggers maps the trigger set to the workflow trigger block.
// Rules apply independently; an empty set yields an empty block, which
// schema validation flags but compilation tolerates.
func compileTriggers(cfg *Config) workflow.Triggers {
	branches := []string{"main", "master"}

	var t workflow.Triggers
	if cfg.HasTrigger(TriggerPushMain) {
		t.Push = &workflow.PushTrigger{
			Branches:    branches,
			PathsIgnore: []string{"**.md", "docs/**"},
		}
	}
	if cfg.HasTrigger(TriggerPullRequest) {
		t.PullRequest = &workflow.PullRequestTrigger{Branches: branches}
	}
	if cfg.HasTrigger(TriggerManual) {
		t.WorkflowDispatch = manualDispatch(cfg)
	}
	return t
}

// manualDispatch builds the workflow_dispatch trigger. The build-type
// choice enumerates exactly the selected build types plus a catch-all
// "all"; a platform choice appears only when iOS support is enabled.
func manualDispatch(cfg *Config) *workflow.WorkflowDispatch {
	options := make([]string, 0, 4)
	for _, bt := range BuildTypes() {
		if cfg.HasBuildType(bt) {
			options = append(options, string(bt))
		}
	}
	options = append(options, "all")

	dispatch := &workflow.WorkflowDispatch{
		Inputs: []workflow.DispatchInput{{
			ID:          "build-type",
			Description: "Build type to run",
			Required:    true,
			Default:     "all",
			Type:        "choice",
			Options:     options,
		}},
	}

	if cfg.Advanced.IOSSupport {
		dispatch.Inputs = append(dispatch.Inputs, workflow.DispatchInput{
			ID:          "platform",
			Description: "Target platform",
			Required:    true,
			Default:     "android",
			Type:        "choice",
			Options:     []string{"android", "ios"},
		})
	}
	return dispatch
}

// checkSkipJob is present in every compiled document. It guards the rest
// of the pipeline against commits carrying the skip marker.
func checkSkipJob() workflow.Job {
	return workflow.Job{
		ID:     JobCheckSkip,
		RunsOn: "ubuntu-latest",
		If:     fmt.Sprintf("!contains(github.event.head_commit.message, '%s')", skipMarker),
		Steps: []workflow.Step{{
			Name: "Check for skip marker",
			Run:  `echo "no skip marker found, proceeding"`,
		}},
	}
}

// testJob emits the test job: checkout and toolchain setup, optional
// cache steps, dependency install, then one step per selected static
// check and enabled test flag, all in rule-table order.
func testJob(cfg *Config) workflow.Job {
	pm := cfg.EffectivePackageManager()
	cs := Commands(pm)

	steps := setupSteps(pm)

	if cfg.Advanced.Caching {
		steps = append(steps,
			workflow.Step{
				Name: "Get package manager cache directory",
				ID:   "cache-dir",
				Run:  fmt.Sprintf(`echo "dir=$(%s)" >> "$GITHUB_OUTPUT"`, cs.CacheDir),
			},
			workflow.Step{
				Name: "Restore dependency cache",
				Uses: "actions/cache@v4",
				With: []workflow.WithParam{
					{Name: "path", Value: "${{ steps.cache-dir.outputs.dir }}"},
					{Name: "key", Value: fmt.Sprintf("${{ runner.os }}-%s-${{ hashFiles('%s') }}", pm, cs.LockFile)},
					{Name: "restore-keys", Value: fmt.Sprintf("${{ runner.os }}-%s-", pm)},
				},
			},
		)
	}

	steps = append(steps, workflow.Step{Name: "Install dependencies", Run: cs.Install})

	// Static checks in canonical order, independent of the set's own order.
	if cfg.HasTest(TestTypeScript) {
		steps = append(steps, workflow.Step{Name: "Type check", Run: cs.TypeCheck})
	}
	if cfg.HasTest(TestESLint) {
		steps = append(steps, workflow.Step{Name: "Lint", Run: cs.Lint})
	}
	if cfg.HasTest(TestPrettier) {
		steps = append(steps, workflow.Step{Name: "Check formatting", Run: cs.FormatCheck})
	}

	if cfg.Advanced.JestTests {
		steps = append(steps, workflow.Step{Name: "Run unit tests", Run: cs.Jest})
	}
	if cfg.Advanced.RNTLTests {
		steps = append(steps, workflow.Step{Name: "Run component tests", Run: cs.RNTL})
	}
	if cfg.Advanced.RenderHookTests {
		steps = append(steps, workflow.Step{Name: "Run render hook tests", Run: cs.Hooks})
	}

	return workflow.Job{
		ID:     JobTest,
		RunsOn: "ubuntu-latest",
		Needs:  []string{JobCheckSkip},
		Steps:  steps,
	}
}

// setupSteps returns the checkout and toolchain steps shared by the test
// and build jobs. pnpm needs its own setup action before node resolution.
func setupSteps(pm PackageManager) []workflow.Step {
	steps := []workflow.Step{
		{Uses: "actions/checkout@v4"},
		{
			Name: "Set up Node",
			Uses: "actions/setup-node@v4",
			With: []workflow.WithParam{{Name: "node-version", Value: "20"}},
		},
	}
	if pm == PNPM {
		steps = append(steps, workflow.Step{
			Name: "Set up pnpm",
			Uses: "pnpm/action-setup@v4",
			With: []workflow.WithParam{{Name: "version", Value: "9"}},
		})
	}
	return steps
}
