package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipesmith/pipesmith/internal/errors"
)

func TestWrap(t *testing.T) {
	err := errors.Wrap(errors.ErrSchemaViolation, "failed to render workflow")
	require.Error(t, err)
	assert.Equal(t, "failed to render workflow: workflow schema violation", err.Error())
	assert.ErrorIs(t, err, errors.ErrSchemaViolation)
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errors.Wrap(nil, "ignored"))
}

func TestWrapf(t *testing.T) {
	err := errors.Wrapf(errors.ErrMatrixNotFound, "failed to load matrix %s", "matrix.json")
	require.Error(t, err)
	assert.Equal(t, "failed to load matrix matrix.json: matrix file not found", err.Error())
	assert.ErrorIs(t, err, errors.ErrMatrixNotFound)
}

func TestWrapfNil(t *testing.T) {
	assert.NoError(t, errors.Wrapf(nil, "ignored %d", 42))
}
