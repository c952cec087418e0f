package matrix

import "github.com/pipesmith/pipesmith/internal/pipeline"

// The exhaustive enumeration's axes are named here explicitly so the
// combinatorial algorithm stays auditable and the dedup policy can be
// tested independently of the compiler.

// exhaustivePackageManagers is the package-manager axis of the exhaustive
// enumeration. pnpm is covered by the curated and fixed-profile matrices
// only.
var exhaustivePackageManagers = []pipeline.PackageManager{
	pipeline.Yarn,
	pipeline.NPM,
}

// testFlags is one combination of the three boolean test-suite flags.
type testFlags struct {
	Jest  bool
	RNTL  bool
	Hooks bool
}

// active reports whether any suite flag is enabled.
func (f testFlags) active() bool {
	return f.Jest || f.RNTL || f.Hooks
}

// testKindSubsets enumerates every subset of the test-kind set in
// deterministic bitmask order over the canonical kinds.
func testKindSubsets() [][]pipeline.TestKind {
	kinds := pipeline.TestKinds()
	subsets := make([][]pipeline.TestKind, 0, 1<<len(kinds))
	for mask := 0; mask < 1<<len(kinds); mask++ {
		var subset []pipeline.TestKind
		for i, kind := range kinds {
			if mask&(1<<i) != 0 {
				subset = append(subset, kind)
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

// flagCombos enumerates every combination of the three test-suite flags
// in deterministic bitmask order.
func flagCombos() []testFlags {
	combos := make([]testFlags, 0, 8)
	for mask := 0; mask < 8; mask++ {
		combos = append(combos, testFlags{
			Jest:  mask&1 != 0,
			RNTL:  mask&2 != 0,
			Hooks: mask&4 != 0,
		})
	}
	return combos
}

// cachingVariants returns the caching axis values for a candidate. A
// configuration with zero test-phase commands has nothing for caching to
// affect, so only the caching-on variant is enumerated for it.
func cachingVariants(kinds []pipeline.TestKind, flags testFlags) []bool {
	if len(kinds) == 0 && !flags.active() {
		return []bool{true}
	}
	return []bool{true, false}
}
