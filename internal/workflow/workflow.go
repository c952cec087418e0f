// Package workflow defines the compiled pipeline document model and its
// deterministic YAML rendering.
//
// A Workflow is the output of pipeline compilation: a named document with
// triggers, an environment block, and an ordered list of jobs. Unlike the
// GitHub Actions schema it renders to, jobs and environment entries are
// held in slices rather than maps so that rendering is byte-identical
// across repeated compilations of the same configuration.
package workflow

// Workflow is a complete pipeline document.
type Workflow struct {
	// Name is the display name of the workflow. Required, non-empty.
	Name string

	// On holds the trigger configuration. At least one trigger must be set
	// for the document to pass schema validation.
	On Triggers

	// Env is the ordered workflow-level environment block. Each entry
	// typically references a repository secret.
	Env []EnvVar

	// Jobs is the ordered list of jobs. Order is preserved in rendering.
	Jobs []Job
}

// EnvVar is a single name/value pair in an environment block.
type EnvVar struct {
	Name  string
	Value string
}

// Triggers holds the workflow trigger configuration. Nil members are
// omitted from rendering.
type Triggers struct {
	Push             *PushTrigger
	PullRequest      *PullRequestTrigger
	WorkflowDispatch *WorkflowDispatch
}

// Empty reports whether no trigger is configured.
func (t Triggers) Empty() bool {
	return t.Push == nil && t.PullRequest == nil && t.WorkflowDispatch == nil
}

// PushTrigger fires on pushes to the listed branches.
type PushTrigger struct {
	Branches    []string
	PathsIgnore []string
}

// PullRequestTrigger fires on pull requests targeting the listed branches.
type PullRequestTrigger struct {
	Branches []string
}

// WorkflowDispatch is a manually dispatched trigger with typed inputs.
type WorkflowDispatch struct {
	Inputs []DispatchInput
}

// DispatchInput is one input of a workflow_dispatch trigger.
type DispatchInput struct {
	ID          string
	Description string
	Required    bool
	Default     string
	Type        string
	Options     []string
}

// Job is a single job in the document.
type Job struct {
	// ID is the job identifier used as the mapping key and in needs lists.
	ID string

	// RunsOn is the runner label or expression. Required, non-empty.
	RunsOn string

	// Needs lists job IDs this job depends on. Every entry must reference
	// a job present in the same document.
	Needs []string

	// If is an optional conditional guard expression.
	If string

	// Strategy is an optional execution strategy (platform matrix).
	Strategy *Strategy

	// Steps is the ordered, non-empty step list.
	Steps []Step
}

// Strategy holds a job execution strategy.
type Strategy struct {
	Matrix MatrixSpec
}

// MatrixSpec is an include-style strategy matrix.
type MatrixSpec struct {
	Include []MatrixInclude
}

// MatrixInclude is one leg of a strategy matrix.
type MatrixInclude struct {
	Platform string
	OS       string
}

// Step is exactly one of an external action invocation (Uses) or a shell
// command (Run). Consumers enforce this XOR via Validate.
type Step struct {
	Name string
	ID   string
	If   string
	Uses string
	Run  string
	With []WithParam
	Env  []EnvVar
}

// WithParam is one ordered parameter of an action invocation.
type WithParam struct {
	Name  string
	Value string
}

// IsRun reports whether the step is a shell command step.
func (s Step) IsRun() bool { return s.Run != "" }

// FindJob returns the job with the given ID, or nil if absent.
func (w *Workflow) FindJob(id string) *Job {
	for i := range w.Jobs {
		if w.Jobs[i].ID == id {
			return &w.Jobs[i]
		}
	}
	return nil
}
