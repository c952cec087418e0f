// Package testutil provides testing utilities for pipesmith.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockCommandFailed indicates a mock command execution failure (used in tests).
	ErrMockCommandFailed = errors.New("command failed")

	// ErrMockRunnerUnavailable indicates a mock runner could not start (used in tests).
	ErrMockRunnerUnavailable = errors.New("runner unavailable")
)
