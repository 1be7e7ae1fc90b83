// Package dataset loads task datasets and indexes them for lookup by ID.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/webarena-verified/sdk/eval"
	"github.com/webarena-verified/sdk/types"
)

// Dataset is a validated, indexed collection of tasks.
type Dataset struct {
	Name    string       `json:"name,omitempty" yaml:"name,omitempty"`
	Version string       `json:"version,omitempty" yaml:"version,omitempty"`
	Tasks   []types.Task `json:"tasks" yaml:"tasks"`

	byID map[int]*types.Task
}

// Load reads a dataset from a file. The format is detected by extension
// (.json, .yaml, .yml). Both an object with a tasks list and a bare task
// array are accepted, since published task files use either shape.
// It validates every task and requires unique task IDs.
func Load(path string) (*Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("dataset file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var ds Dataset
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
			err = json.Unmarshal(data, &ds.Tasks)
		} else {
			err = json.Unmarshal(data, &ds)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON dataset: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &ds); err != nil {
			var tasks []types.Task
			if yaml.Unmarshal(data, &tasks) != nil {
				return nil, fmt.Errorf("failed to parse YAML dataset: %w", err)
			}
			ds = Dataset{Tasks: tasks}
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s (supported: .json, .yaml, .yml)", ext)
	}

	if err := ds.init(); err != nil {
		return nil, fmt.Errorf("dataset validation failed: %w", err)
	}
	return &ds, nil
}

// FromTasks builds a dataset from in-memory tasks, applying the same
// validation as Load.
func FromTasks(tasks []types.Task) (*Dataset, error) {
	ds := &Dataset{Tasks: tasks}
	if err := ds.init(); err != nil {
		return nil, err
	}
	return ds, nil
}

// init validates the tasks and builds the ID index.
func (d *Dataset) init() error {
	d.byID = make(map[int]*types.Task, len(d.Tasks))
	for i := range d.Tasks {
		task := &d.Tasks[i]
		if err := task.Validate(); err != nil {
			return fmt.Errorf("task at index %d: %w", i, err)
		}
		for _, ec := range task.Eval {
			if _, err := eval.New(ec.Evaluator); err != nil {
				return fmt.Errorf("task %d: %w", task.TaskID, err)
			}
		}
		if _, dup := d.byID[task.TaskID]; dup {
			return fmt.Errorf("duplicate task ID found: %d", task.TaskID)
		}
		d.byID[task.TaskID] = task
	}
	return nil
}

// Get returns the task with the given ID.
func (d *Dataset) Get(taskID int) (*types.Task, bool) {
	task, ok := d.byID[taskID]
	return task, ok
}

// Len returns the number of tasks in the dataset.
func (d *Dataset) Len() int {
	return len(d.Tasks)
}

// FilterBySite returns a new dataset containing only the tasks that run
// against the given site. The original dataset is not modified.
func (d *Dataset) FilterBySite(site types.Site) *Dataset {
	filtered := &Dataset{
		Name:    d.Name,
		Version: d.Version,
		Tasks:   make([]types.Task, 0),
	}
	for _, task := range d.Tasks {
		for _, s := range task.Sites {
			if s == site {
				filtered.Tasks = append(filtered.Tasks, task)
				break
			}
		}
	}
	// Filtering cannot introduce validation errors.
	_ = filtered.init()
	return filtered
}
