package harness

import (
	"time"

	"github.com/pipesmith/pipesmith/internal/extract"
)

// Outcome is the disposition of one replayed command.
type Outcome string

// The three outcomes a command can have. Skipped commands never count as
// failures.
const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Result captures the outcome of a single replayed command.
type Result struct {
	Label       string           `json:"label"`
	Command     string           `json:"command"`
	Category    extract.Category `json:"category"`
	Outcome     Outcome          `json:"outcome"`
	SkipReason  string           `json:"skip_reason,omitempty"`
	ExitCode    int              `json:"exit_code"`
	Stdout      string           `json:"stdout,omitempty"`
	Stderr      string           `json:"stderr,omitempty"`
	DurationMs  int64            `json:"duration_ms"`
	Error       string           `json:"error,omitempty"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt time.Time        `json:"completed_at"`
}

// Report aggregates the results of one harness run.
type Report struct {
	// RunID tags the run in logs and output.
	RunID string `json:"run_id"`

	// Fixture is the directory commands were replayed against.
	Fixture string `json:"fixture"`

	// Results holds one entry per command, in execution order.
	Results []Result `json:"results"`

	// Passed, Failed and Skipped count the respective outcomes.
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`

	// Success is true iff no command failed.
	Success bool `json:"success"`

	// DurationMs is the total run duration.
	DurationMs int64 `json:"duration_ms"`
}

// record appends a result and updates the counters.
func (r *Report) record(result Result) {
	r.Results = append(r.Results, result)
	switch result.Outcome {
	case OutcomePassed:
		r.Passed++
	case OutcomeFailed:
		r.Failed++
	case OutcomeSkipped:
		r.Skipped++
	}
}
