package matrix

import (
	"fmt"
	"strings"

	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/pipeline"
)

// Mode selects a matrix generation strategy.
type Mode string

// Supported generation modes.
const (
	ModeCurated      Mode = "curated"
	ModeExhaustive   Mode = "exhaustive"
	ModeFixedProfile Mode = "fixed-profile"
)

// Modes returns all generation modes in canonical order.
func Modes() []Mode {
	return []Mode{ModeCurated, ModeExhaustive, ModeFixedProfile}
}

// ParseMode converts a mode selector string into a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	for _, m := range Modes() {
		if mode == m {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidMatrixMode, s, Modes())
}

// Generate produces the matrix for the given mode.
func Generate(mode Mode) (Matrix, error) {
	switch mode {
	case ModeCurated:
		return Curated(), nil
	case ModeExhaustive:
		return Exhaustive(), nil
	case ModeFixedProfile:
		return FixedProfile(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidMatrixMode, mode)
	}
}

// candidate builds one enumeration candidate. Axes not under enumeration
// are pinned so every candidate compiles to a schema-valid document.
func candidate(pm pipeline.PackageManager, kinds []pipeline.TestKind, flags testFlags, caching bool) pipeline.Config {
	return pipeline.Config{
		ProjectName:    "rn-sample",
		PackageManager: pm,
		Storage:        pipeline.GitHubRelease,
		BuildTypes:     []pipeline.BuildType{pipeline.BuildDev},
		Tests:          kinds,
		Triggers:       []pipeline.Trigger{pipeline.TriggerPushMain},
		Advanced: pipeline.AdvancedOptions{
			JestTests:       flags.Jest,
			RNTLTests:       flags.RNTL,
			RenderHookTests: flags.Hooks,
			Caching:         caching,
		},
	}
}

// Exhaustive enumerates the full cross product of the named axes and
// keeps a candidate only if its command signature has not been seen
// before in this enumeration. First-encountered wins; the nested loop
// order below is part of the observable contract since it decides which
// of two equivalent candidates survives.
func Exhaustive() Matrix {
	seen := make(map[string]struct{})
	var m Matrix

	for _, pm := range exhaustivePackageManagers {
		for _, kinds := range testKindSubsets() {
			for _, flags := range flagCombos() {
				for _, caching := range cachingVariants(kinds, flags) {
					cfg := candidate(pm, kinds, flags, caching)
					sig := Signature(&cfg)
					if _, dup := seen[sig]; dup {
						continue
					}
					seen[sig] = struct{}{}
					m = append(m, Entry{
						Name:    exhaustiveName(pm, kinds, flags, caching),
						Config:  cfg,
						Fixture: FixtureFor(pm),
					})
				}
			}
		}
	}
	return m
}

// exhaustiveName encodes every enumeration axis into the entry name, so
// names are unique by construction.
func exhaustiveName(pm pipeline.PackageManager, kinds []pipeline.TestKind, flags testFlags, caching bool) string {
	parts := []string{string(pm)}

	if len(kinds) == 0 {
		parts = append(parts, "no-static")
	} else {
		names := make([]string, 0, len(kinds))
		for _, k := range kinds {
			names = append(names, string(k))
		}
		parts = append(parts, strings.Join(names, "+"))
	}

	var suites []string
	if flags.Jest {
		suites = append(suites, "jest")
	}
	if flags.RNTL {
		suites = append(suites, "rntl")
	}
	if flags.Hooks {
		suites = append(suites, "hooks")
	}
	if len(suites) == 0 {
		parts = append(parts, "no-suites")
	} else {
		parts = append(parts, strings.Join(suites, "+"))
	}

	if !caching {
		parts = append(parts, "nocache")
	}
	return strings.Join(parts, "-")
}

// fixedProfiles maps the three build-profile presets to their single
// build type.
var fixedProfiles = []struct {
	Name      string
	BuildType pipeline.BuildType
}{
	{Name: "development", BuildType: pipeline.BuildDev},
	{Name: "production-apk", BuildType: pipeline.BuildProdAPK},
	{Name: "production-aab", BuildType: pipeline.BuildProdAAB},
}

// FixedProfile crosses every package manager with the three build-profile
// presets. Always 3x3 entries, each with a single build type; no
// deduplication is needed at this size.
func FixedProfile() Matrix {
	var m Matrix
	for _, pm := range pipeline.PackageManagers() {
		for _, profile := range fixedProfiles {
			cfg := pipeline.Config{
				ProjectName:    "rn-sample",
				PackageManager: pm,
				Storage:        pipeline.GitHubRelease,
				BuildTypes:     []pipeline.BuildType{profile.BuildType},
				Triggers:       []pipeline.Trigger{pipeline.TriggerPushMain},
			}
			m = append(m, Entry{
				Name:    fmt.Sprintf("%s-%s", pm, profile.Name),
				Config:  cfg,
				Fixture: FixtureFor(pm),
			})
		}
	}
	return m
}
