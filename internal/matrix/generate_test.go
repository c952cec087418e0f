package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/matrix"
	"github.com/pipesmith/pipesmith/internal/pipeline"
	"github.com/pipesmith/pipesmith/internal/workflow"
)

func TestParseMode(t *testing.T) {
	for _, mode := range matrix.Modes() {
		parsed, err := matrix.ParseMode(string(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	_, err := matrix.ParseMode("random")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidMatrixMode)
}

func TestGenerateDispatch(t *testing.T) {
	for _, mode := range matrix.Modes() {
		m, err := matrix.Generate(mode)
		require.NoError(t, err)
		assert.NotEmpty(t, m, "mode=%s", mode)
	}
}

func TestExhaustiveSizeBounds(t *testing.T) {
	m := matrix.Exhaustive()

	// A useful sweep is big enough to exercise the compiler broadly and
	// strictly smaller than the raw cross product.
	assert.Greater(t, len(m), 100)
	assert.Less(t, len(m), 500)

	rawCrossProduct := 2 * 8 * 8 * 2
	assert.Less(t, len(m), rawCrossProduct)
}

func TestExhaustiveNamesUnique(t *testing.T) {
	m := matrix.Exhaustive()
	require.NoError(t, m.Validate())
}

func TestExhaustiveSignaturesUnique(t *testing.T) {
	m := matrix.Exhaustive()

	seen := make(map[string]string, len(m))
	for _, entry := range m {
		cfg := entry.Config
		sig := matrix.Signature(&cfg)
		first, dup := seen[sig]
		require.False(t, dup, "%s and %s share signature %q", first, entry.Name, sig)
		seen[sig] = entry.Name
	}
}

func TestExhaustiveIsDeterministic(t *testing.T) {
	first := matrix.Exhaustive()
	second := matrix.Exhaustive()
	assert.Equal(t, first, second)
}

func TestExhaustiveEveryEntryCompiles(t *testing.T) {
	for _, entry := range matrix.Exhaustive() {
		cfg := entry.Config
		require.NoError(t, workflow.Validate(pipeline.Compile(&cfg)), "entry=%s", entry.Name)
	}
}

func TestExhaustiveFixturesFollowPackageManager(t *testing.T) {
	for _, entry := range matrix.Exhaustive() {
		assert.Equal(t, matrix.FixtureFor(entry.Config.PackageManager), entry.Fixture)
	}
}

func TestFixedProfileMatrix(t *testing.T) {
	m := matrix.FixedProfile()
	require.Len(t, m, 9)
	require.NoError(t, m.Validate())

	// One entry per package manager and profile, single build type each.
	for _, entry := range m {
		assert.Len(t, entry.Config.BuildTypes, 1)
	}
	assert.Equal(t, "yarn-development", m[0].Name)
	assert.Equal(t, "pnpm-production-aab", m[8].Name)
}

func TestCuratedMatrix(t *testing.T) {
	m := matrix.Curated()
	require.Len(t, m, 20)
	require.NoError(t, m.Validate())

	names := make(map[string]matrix.Entry, len(m))
	for _, entry := range m {
		names[entry.Name] = entry
	}

	// Every package manager gets the representative variants.
	for _, pm := range pipeline.PackageManagers() {
		for _, suffix := range []string{"no-tests", "typescript-only", "all-static", "jest-only", "full-suite", "no-cache"} {
			assert.Contains(t, names, string(pm)+"-"+suffix)
		}
	}

	// Single-kind variants exist once, on the default package manager.
	assert.Contains(t, names, "yarn-eslint-only")
	assert.Contains(t, names, "yarn-prettier-only")
	assert.NotContains(t, names, "npm-eslint-only")

	full := names["npm-full-suite"]
	assert.True(t, full.Config.Advanced.JestTests)
	assert.True(t, full.Config.Advanced.RNTLTests)
	assert.True(t, full.Config.Advanced.RenderHookTests)
	assert.True(t, full.Config.Advanced.Caching)
	assert.Equal(t, matrix.FixtureNPM, full.Fixture)

	noCache := names["yarn-no-cache"]
	assert.False(t, noCache.Config.Advanced.Caching)
	assert.Len(t, noCache.Config.Tests, 3)
}

func TestEntryIndexing(t *testing.T) {
	m := matrix.FixedProfile()

	entry, err := m.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, m[0], entry)

	_, err = m.Entry(len(m))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrIndexOutOfRange)

	_, err = m.Entry(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrIndexOutOfRange)
}

func TestValidateRejectsDuplicateNames(t *testing.T) {
	m := matrix.Matrix{
		{Name: "dup", Fixture: matrix.FixtureYarn},
		{Name: "dup", Fixture: matrix.FixtureYarn},
	}
	err := m.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDuplicateEntryName)
}

func TestFixtureFor(t *testing.T) {
	assert.Equal(t, matrix.FixtureYarn, matrix.FixtureFor(pipeline.Yarn))
	assert.Equal(t, matrix.FixtureNPM, matrix.FixtureFor(pipeline.NPM))
	assert.Equal(t, matrix.FixturePNPM, matrix.FixtureFor(pipeline.PNPM))
	assert.Equal(t, matrix.FixtureYarn, matrix.FixtureFor(pipeline.PackageManager("bun")))
}
