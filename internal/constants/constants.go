// Package constants provides centralized constant values used throughout pipesmith.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// File names used by pipesmith for generated artifacts and state.
const (
	// WorkflowFileName is the default name of the generated workflow YAML file.
	WorkflowFileName = "ci.yml"

	// MatrixFileName is the default name of the persisted test matrix JSON file.
	MatrixFileName = "matrix.json"

	// ReportFileName is the default name of the harness run report JSON file.
	ReportFileName = "report.json"
)

// Directory names and paths used by pipesmith for organizing data.
const (
	// PipesmithHome is the hidden directory name where pipesmith stores its data.
	// This directory is created in the user's home directory.
	PipesmithHome = ".pipesmith"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// FixturesDir is the directory name where harness fixtures live,
	// relative to the working directory of a matrix run.
	FixturesDir = "fixtures"
)

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.pipesmith/logs/pipesmith.log
	CLILogFileName = "pipesmith.log"
)

// Configuration file names.
const (
	// DefaultConfigName is the default pipeline configuration file name,
	// looked up in the current directory when --config is not given.
	DefaultConfigName = "pipesmith.yaml"
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before a log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of old log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum number of days to retain old log files.
	LogMaxAgeDays = 28

	// LogCompress controls whether rotated log files are gzip compressed.
	LogCompress = true
)

// Timeout configurations for harness operations.
const (
	// DefaultCommandTimeout is the default maximum duration for a single
	// command executed by the harness.
	DefaultCommandTimeout = 5 * time.Minute
)
