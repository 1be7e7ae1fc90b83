package eval

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/webarena-verified/sdk/nettrace"
	"github.com/webarena-verified/sdk/types"
)

// Status is the outcome of an evaluator run or a whole task.
type Status string

// Outcome constants. Error means the evaluation itself could not be carried
// out, as opposed to the agent failing the task.
const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusError   Status = "error"
)

// Input carries everything an evaluator may inspect: the task definition, the
// site environment configuration, the agent's raw final response, and the
// recorded network trace.
type Input struct {
	Task        *types.Task
	Config      *types.Config
	RawResponse string
	Trace       *nettrace.Trace
}

// Evaluator grades one aspect of a task attempt. Implementations never return
// a Go error: faults are reported through the result's error status so one
// evaluator cannot abort another.
type Evaluator interface {
	// Name returns the evaluator's registry name as used in eval configs.
	Name() string

	// Evaluate grades the input against one eval config entry.
	Evaluate(ctx context.Context, in Input, cfg types.EvaluatorConfig) EvaluatorResult
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Evaluator{}
)

// Register makes an evaluator constructor available under its name.
// Registering a duplicate name panics, as it would silently shadow grading
// logic.
func Register(name string, constructor func() Evaluator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("eval: evaluator %q registered twice", name))
	}
	registry[name] = constructor
}

// New returns a fresh evaluator instance for the given registry name.
func New(name string) (Evaluator, error) {
	registryMu.RLock()
	constructor, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown evaluator %q (registered: %v)", name, Registered())
	}
	return constructor(), nil
}

// Registered returns the sorted names of all registered evaluators.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
