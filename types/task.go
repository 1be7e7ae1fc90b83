package types

import (
	"encoding/json"
	"fmt"

	"github.com/webarena-verified/sdk/normalize"
)

// EvaluatorConfig is one eval entry of a task: the evaluator to run, its
// expectations, and an optional schema refining how expected values compare.
type EvaluatorConfig struct {
	Evaluator     string            `json:"evaluator" yaml:"evaluator"`
	Expected      map[string]any    `json:"expected" yaml:"expected"`
	ResultsSchema *normalize.Schema `json:"results_schema,omitempty" yaml:"results_schema,omitempty"`
}

// Task is one benchmark task: an intent executed against one or more sites,
// graded by the listed evaluators.
type Task struct {
	TaskID   int               `json:"task_id" yaml:"task_id"`
	Sites    []Site            `json:"sites" yaml:"sites"`
	Intent   string            `json:"intent,omitempty" yaml:"intent,omitempty"`
	StartURL string            `json:"start_url,omitempty" yaml:"start_url,omitempty"`
	Eval     []EvaluatorConfig `json:"eval" yaml:"eval"`
}

// Validate checks the structural requirements of a task definition.
func (t *Task) Validate() error {
	if len(t.Sites) == 0 {
		return fmt.Errorf("task %d: no sites", t.TaskID)
	}
	for _, site := range t.Sites {
		if !site.IsValid() {
			return fmt.Errorf("task %d: unknown site %q", t.TaskID, site)
		}
	}
	if len(t.Eval) == 0 {
		return fmt.Errorf("task %d: no eval entries", t.TaskID)
	}
	for i, ec := range t.Eval {
		if ec.Evaluator == "" {
			return fmt.Errorf("task %d: eval entry %d has no evaluator", t.TaskID, i)
		}
	}
	return nil
}

// UnmarshalJSON accepts sites as either strings or already-typed values and
// normalizes their case.
func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	var raw struct {
		alias
		Sites []string `json:"sites"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Task(raw.alias)
	t.Sites = make([]Site, 0, len(raw.Sites))
	for _, s := range raw.Sites {
		site, err := ParseSite(s)
		if err != nil {
			return err
		}
		t.Sites = append(t.Sites, site)
	}
	return nil
}
