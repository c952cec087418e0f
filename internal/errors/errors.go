// Package errors provides centralized error handling for pipesmith.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidPackageManager indicates an unknown package manager value.
	ErrInvalidPackageManager = errors.New("invalid package manager")

	// ErrInvalidStorageType indicates an unknown storage/distribution type.
	ErrInvalidStorageType = errors.New("invalid storage type")

	// ErrInvalidBuildType indicates an unknown build type value.
	ErrInvalidBuildType = errors.New("invalid build type")

	// ErrInvalidTestKind indicates an unknown test kind value.
	ErrInvalidTestKind = errors.New("invalid test kind")

	// ErrInvalidTrigger indicates an unknown trigger value.
	ErrInvalidTrigger = errors.New("invalid trigger")

	// ErrInvalidNotificationChannel indicates an unknown notification channel.
	ErrInvalidNotificationChannel = errors.New("invalid notification channel")

	// ErrInvalidMatrixMode indicates an unknown matrix generation mode.
	ErrInvalidMatrixMode = errors.New("invalid matrix mode")

	// ErrConfigNotFound indicates the pipeline configuration file was not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrMatrixNotFound indicates the matrix file was not found.
	ErrMatrixNotFound = errors.New("matrix file not found")

	// ErrFixtureNotFound indicates the fixture directory was not found.
	ErrFixtureNotFound = errors.New("fixture directory not found")

	// ErrIndexOutOfRange indicates a matrix entry index outside the matrix bounds.
	ErrIndexOutOfRange = errors.New("matrix index out of range")

	// ErrDuplicateEntryName indicates two matrix entries share a name.
	ErrDuplicateEntryName = errors.New("duplicate matrix entry name")

	// ErrDuplicateSignature indicates two deduplicated entries share a signature.
	ErrDuplicateSignature = errors.New("duplicate command signature")

	// ErrSchemaViolation indicates a compiled workflow violates the document schema.
	ErrSchemaViolation = errors.New("workflow schema violation")

	// ErrCommandFailed indicates that a replayed command exited non-zero.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandTimeout indicates a command exceeded its timeout duration.
	ErrCommandTimeout = errors.New("command timeout exceeded")

	// ErrCommandNotConfigured indicates that a mock command was not configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrWorkDirMissing indicates the working directory for command execution is absent.
	ErrWorkDirMissing = errors.New("work directory missing")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
