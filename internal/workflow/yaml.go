package workflow

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/pipesmith/pipesmith/internal/errors"
)

// Render serializes the workflow to YAML. Mapping nodes are constructed
// explicitly so key order follows document order, never Go map iteration.
// Repeated calls on an identical workflow yield byte-identical output.
func Render(w *Workflow) ([]byte, error) {
	node, err := w.yamlNode()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrap(err, "failed to encode workflow")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize workflow encoding")
	}
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler so the workflow renders with
// ordered mappings when embedded in other documents (matrix files).
func (w *Workflow) MarshalYAML() (any, error) {
	return w.yamlNode()
}

func (w *Workflow) yamlNode() (*yaml.Node, error) {
	root := newMapNode()
	appendPair(root, "name", strNode(w.Name))
	appendPair(root, "on", w.On.yamlNode())

	if len(w.Env) > 0 {
		appendPair(root, "env", envNode(w.Env))
	}

	jobs := newMapNode()
	for i := range w.Jobs {
		appendPair(jobs, w.Jobs[i].ID, w.Jobs[i].yamlNode())
	}
	appendPair(root, "jobs", jobs)

	return root, nil
}

func (t Triggers) yamlNode() *yaml.Node {
	on := newMapNode()
	if t.Push != nil {
		push := newMapNode()
		appendPair(push, "branches", strSeqNode(t.Push.Branches))
		if len(t.Push.PathsIgnore) > 0 {
			appendPair(push, "paths-ignore", strSeqNode(t.Push.PathsIgnore))
		}
		appendPair(on, "push", push)
	}
	if t.PullRequest != nil {
		pr := newMapNode()
		appendPair(pr, "branches", strSeqNode(t.PullRequest.Branches))
		appendPair(on, "pull_request", pr)
	}
	if t.WorkflowDispatch != nil {
		appendPair(on, "workflow_dispatch", t.WorkflowDispatch.yamlNode())
	}
	return on
}

func (d *WorkflowDispatch) yamlNode() *yaml.Node {
	dispatch := newMapNode()
	if len(d.Inputs) == 0 {
		return dispatch
	}
	inputs := newMapNode()
	for _, in := range d.Inputs {
		input := newMapNode()
		if in.Description != "" {
			appendPair(input, "description", strNode(in.Description))
		}
		appendPair(input, "required", boolNode(in.Required))
		if in.Default != "" {
			appendPair(input, "default", strNode(in.Default))
		}
		if in.Type != "" {
			appendPair(input, "type", strNode(in.Type))
		}
		if len(in.Options) > 0 {
			appendPair(input, "options", strSeqNode(in.Options))
		}
		appendPair(inputs, in.ID, input)
	}
	appendPair(dispatch, "inputs", inputs)
	return dispatch
}

func (j *Job) yamlNode() *yaml.Node {
	job := newMapNode()
	if j.If != "" {
		appendPair(job, "if", strNode(j.If))
	}
	if len(j.Needs) > 0 {
		if len(j.Needs) == 1 {
			appendPair(job, "needs", strNode(j.Needs[0]))
		} else {
			appendPair(job, "needs", strSeqNode(j.Needs))
		}
	}
	if j.Strategy != nil {
		appendPair(job, "strategy", j.Strategy.yamlNode())
	}
	appendPair(job, "runs-on", strNode(j.RunsOn))

	steps := newSeqNode()
	for i := range j.Steps {
		steps.Content = append(steps.Content, j.Steps[i].yamlNode())
	}
	appendPair(job, "steps", steps)
	return job
}

func (s *Strategy) yamlNode() *yaml.Node {
	include := newSeqNode()
	for _, inc := range s.Matrix.Include {
		leg := newMapNode()
		appendPair(leg, "platform", strNode(inc.Platform))
		appendPair(leg, "os", strNode(inc.OS))
		include.Content = append(include.Content, leg)
	}
	matrix := newMapNode()
	appendPair(matrix, "include", include)
	strategy := newMapNode()
	appendPair(strategy, "matrix", matrix)
	return strategy
}

func (s *Step) yamlNode() *yaml.Node {
	step := newMapNode()
	if s.Name != "" {
		appendPair(step, "name", strNode(s.Name))
	}
	if s.ID != "" {
		appendPair(step, "id", strNode(s.ID))
	}
	if s.If != "" {
		appendPair(step, "if", strNode(s.If))
	}
	if s.Uses != "" {
		appendPair(step, "uses", strNode(s.Uses))
	}
	if len(s.With) > 0 {
		with := newMapNode()
		for _, p := range s.With {
			appendPair(with, p.Name, strNode(p.Value))
		}
		appendPair(step, "with", with)
	}
	if s.Run != "" {
		appendPair(step, "run", strNode(s.Run))
	}
	if len(s.Env) > 0 {
		appendPair(step, "env", envNode(s.Env))
	}
	return step
}

func envNode(env []EnvVar) *yaml.Node {
	node := newMapNode()
	for _, e := range env {
		appendPair(node, e.Name, strNode(e.Value))
	}
	return node
}

func newMapNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func newSeqNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolNode(b bool) *yaml.Node {
	v := "false"
	if b {
		v = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v}
}

func strSeqNode(items []string) *yaml.Node {
	node := newSeqNode()
	for _, item := range items {
		node.Content = append(node.Content, strNode(item))
	}
	return node
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key), value)
}
