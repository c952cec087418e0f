package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/matrix"
	"github.com/pipesmith/pipesmith/internal/pipeline"
)

func TestRunMatrixVerify_ValidMatrix(t *testing.T) {
	t.Parallel()

	path, m := writeTestMatrix(t, matrix.ModeFixedProfile)

	var buf bytes.Buffer
	flags := &matrixVerifyFlags{MatrixPath: path}

	err := runMatrixVerify(context.Background(), flags, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), fmt.Sprintf("OK: %d entries verified", len(m)))
}

func TestRunMatrixVerify_AllGeneratedModes(t *testing.T) {
	t.Parallel()

	for _, mode := range []matrix.Mode{matrix.ModeCurated, matrix.ModeExhaustive, matrix.ModeFixedProfile} {
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()

			path, _ := writeTestMatrix(t, mode)
			var buf bytes.Buffer

			err := runMatrixVerify(context.Background(), &matrixVerifyFlags{MatrixPath: path}, &buf)
			require.NoError(t, err)
		})
	}
}

func TestRunMatrixVerify_InvalidEntry(t *testing.T) {
	t.Parallel()

	m := matrix.Matrix{
		{
			Name:    "valid-entry",
			Fixture: matrix.FixtureYarn,
			Config:  pipeline.Config{PackageManager: pipeline.Yarn},
		},
		{
			Name:    "broken-entry",
			Fixture: matrix.FixtureYarn,
			Config:  pipeline.Config{PackageManager: "bower"},
		},
	}
	path := filepath.Join(t.TempDir(), "matrix.json")
	require.NoError(t, m.WriteFile(path))

	var buf bytes.Buffer
	err := runMatrixVerify(context.Background(), &matrixVerifyFlags{MatrixPath: path}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matrix verification failed: 1 of 2 entries invalid")
	assert.Contains(t, buf.String(), "broken-entry")
}

func TestRunMatrixVerify_DuplicateNames(t *testing.T) {
	t.Parallel()

	m := matrix.Matrix{
		{Name: "twin", Fixture: matrix.FixtureYarn, Config: pipeline.Config{}},
		{Name: "twin", Fixture: matrix.FixtureYarn, Config: pipeline.Config{}},
	}
	path := filepath.Join(t.TempDir(), "matrix.json")
	require.NoError(t, m.WriteFile(path))

	var buf bytes.Buffer
	err := runMatrixVerify(context.Background(), &matrixVerifyFlags{MatrixPath: path}, &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDuplicateEntryName)
}

func TestRunMatrixVerify_WarnsOnDuplicateSignatures(t *testing.T) {
	t.Parallel()

	// Storage does not affect the test-phase signature, so these two
	// entries collide.
	m := matrix.Matrix{
		{
			Name:    "github-storage",
			Fixture: matrix.FixtureYarn,
			Config: pipeline.Config{
				PackageManager: pipeline.Yarn,
				Storage:        pipeline.GitHubRelease,
				Tests:          []pipeline.TestKind{pipeline.TestTypeScript},
			},
		},
		{
			Name:    "zoho-storage",
			Fixture: matrix.FixtureYarn,
			Config: pipeline.Config{
				PackageManager: pipeline.Yarn,
				Storage:        pipeline.ZohoDrive,
				Tests:          []pipeline.TestKind{pipeline.TestTypeScript},
			},
		},
	}
	path := filepath.Join(t.TempDir(), "matrix.json")
	require.NoError(t, m.WriteFile(path))

	var buf bytes.Buffer
	err := runMatrixVerify(context.Background(), &matrixVerifyFlags{MatrixPath: path}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "warning: zoho-storage shares a command signature with github-storage")
}

func TestRunMatrixVerify_MissingFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	flags := &matrixVerifyFlags{MatrixPath: filepath.Join(t.TempDir(), "missing.json")}

	err := runMatrixVerify(context.Background(), flags, &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMatrixNotFound)
}
