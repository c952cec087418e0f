package workflow

import (
	"fmt"

	"github.com/pipesmith/pipesmith/internal/errors"
)

// Validate checks the document against the schema every consumer relies on:
// a non-empty name, at least one trigger, a non-empty job list, a non-empty
// runs-on and step list per job, the run/uses XOR on every step, and needs
// references that resolve to job IDs present in the same document.
func Validate(w *Workflow) error {
	if w == nil {
		return fmt.Errorf("%w: workflow is nil", errors.ErrSchemaViolation)
	}
	if w.Name == "" {
		return fmt.Errorf("%w: workflow name is empty", errors.ErrSchemaViolation)
	}
	if w.On.Empty() {
		return fmt.Errorf("%w: no triggers configured", errors.ErrSchemaViolation)
	}
	if len(w.Jobs) == 0 {
		return fmt.Errorf("%w: no jobs present", errors.ErrSchemaViolation)
	}

	ids := make(map[string]struct{}, len(w.Jobs))
	for i := range w.Jobs {
		job := &w.Jobs[i]
		if job.ID == "" {
			return fmt.Errorf("%w: job %d has empty id", errors.ErrSchemaViolation, i)
		}
		if _, dup := ids[job.ID]; dup {
			return fmt.Errorf("%w: duplicate job id %q", errors.ErrSchemaViolation, job.ID)
		}
		ids[job.ID] = struct{}{}
	}

	for i := range w.Jobs {
		if err := validateJob(&w.Jobs[i], ids); err != nil {
			return err
		}
	}
	return nil
}

func validateJob(job *Job, ids map[string]struct{}) error {
	if job.RunsOn == "" {
		return fmt.Errorf("%w: job %q has empty runs-on", errors.ErrSchemaViolation, job.ID)
	}
	if len(job.Steps) == 0 {
		return fmt.Errorf("%w: job %q has no steps", errors.ErrSchemaViolation, job.ID)
	}
	for _, need := range job.Needs {
		if _, ok := ids[need]; !ok {
			return fmt.Errorf("%w: job %q needs unknown job %q", errors.ErrSchemaViolation, job.ID, need)
		}
	}
	for i, step := range job.Steps {
		if err := validateStep(job.ID, i, step); err != nil {
			return err
		}
	}
	return nil
}

// validateStep enforces the run/uses XOR: a step is exactly one of an
// action invocation or a shell command, never both, never neither.
func validateStep(jobID string, index int, step Step) error {
	hasRun := step.Run != ""
	hasUses := step.Uses != ""
	switch {
	case hasRun && hasUses:
		return fmt.Errorf("%w: job %q step %d has both run and uses", errors.ErrSchemaViolation, jobID, index)
	case !hasRun && !hasUses:
		return fmt.Errorf("%w: job %q step %d has neither run nor uses", errors.ErrSchemaViolation, jobID, index)
	}
	return nil
}
