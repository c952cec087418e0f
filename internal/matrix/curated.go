package matrix

import "github.com/pipesmith/pipesmith/internal/pipeline"

// curatedVariant is one hand-authored configuration shape applied to
// every package manager.
type curatedVariant struct {
	Suffix   string
	Tests    []pipeline.TestKind
	Advanced pipeline.AdvancedOptions
}

// curatedVariants are the representative shapes of the curated matrix:
// no tests, type-check only, all static checks, unit tests only, the full
// suite, and the full static set with caching disabled. Size and content
// are fixed by design, not computed.
var curatedVariants = []curatedVariant{
	{
		Suffix: "no-tests",
	},
	{
		Suffix:   "typescript-only",
		Tests:    []pipeline.TestKind{pipeline.TestTypeScript},
		Advanced: pipeline.AdvancedOptions{Caching: true},
	},
	{
		Suffix:   "all-static",
		Tests:    pipeline.TestKinds(),
		Advanced: pipeline.AdvancedOptions{Caching: true},
	},
	{
		Suffix:   "jest-only",
		Advanced: pipeline.AdvancedOptions{JestTests: true, Caching: true},
	},
	{
		Suffix: "full-suite",
		Tests:  pipeline.TestKinds(),
		Advanced: pipeline.AdvancedOptions{
			JestTests:       true,
			RNTLTests:       true,
			RenderHookTests: true,
			Caching:         true,
		},
	},
	{
		Suffix: "no-cache",
		Tests:  pipeline.TestKinds(),
	},
}

// curatedSingleKinds are the extra single-test-kind variants, covered once
// on the default package manager.
var curatedSingleKinds = []curatedVariant{
	{
		Suffix:   "eslint-only",
		Tests:    []pipeline.TestKind{pipeline.TestESLint},
		Advanced: pipeline.AdvancedOptions{Caching: true},
	},
	{
		Suffix:   "prettier-only",
		Tests:    []pipeline.TestKind{pipeline.TestPrettier},
		Advanced: pipeline.AdvancedOptions{Caching: true},
	},
}

// Curated returns the fixed, hand-authored matrix: every package manager
// crossed with the representative variants, plus the single-kind variants
// on yarn.
func Curated() Matrix {
	var m Matrix
	for _, pm := range pipeline.PackageManagers() {
		for _, v := range curatedVariants {
			m = append(m, curatedEntry(pm, v))
		}
	}
	for _, v := range curatedSingleKinds {
		m = append(m, curatedEntry(pipeline.Yarn, v))
	}
	return m
}

func curatedEntry(pm pipeline.PackageManager, v curatedVariant) Entry {
	cfg := pipeline.Config{
		ProjectName:    "rn-sample",
		PackageManager: pm,
		Storage:        pipeline.GitHubRelease,
		BuildTypes:     []pipeline.BuildType{pipeline.BuildDev},
		Tests:          v.Tests,
		Triggers:       []pipeline.Trigger{pipeline.TriggerPushMain},
		Advanced:       v.Advanced,
	}
	return Entry{
		Name:    string(pm) + "-" + v.Suffix,
		Config:  cfg,
		Fixture: FixtureFor(pm),
	}
}
