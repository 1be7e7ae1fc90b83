package eval

import (
	"context"
	"fmt"
	"strings"

	"github.com/webarena-verified/sdk/normalize"
	"github.com/webarena-verified/sdk/types"
)

// AgentResponseEvaluatorName is the registry name used in eval configs.
const AgentResponseEvaluatorName = "AgentResponseEvaluator"

func init() {
	Register(AgentResponseEvaluatorName, func() Evaluator {
		return &AgentResponseEvaluator{}
	})
}

// AgentResponseEvaluator grades the agent's structured final answer: status,
// task type, and retrieved data compared through the value comparator.
type AgentResponseEvaluator struct {
	// Strict rejects unexpected keys in retrieved data objects.
	Strict bool
}

// Name implements Evaluator.
func (e *AgentResponseEvaluator) Name() string {
	return AgentResponseEvaluatorName
}

// Evaluate implements Evaluator.
//
// Faults in the eval config (missing or invalid expectations) yield an error
// result; an unparsable agent response does too, since nothing can be graded.
// A response that parses but does not meet the expectations is a failure.
func (e *AgentResponseEvaluator) Evaluate(ctx context.Context, in Input, cfg types.EvaluatorConfig) EvaluatorResult {
	expStatus, res, ok := e.expectedStatus(cfg)
	if !ok {
		return res
	}

	resp, err := types.ParseAgentResponse(in.RawResponse)
	if err != nil {
		return errorResult(e.Name(), fmt.Sprintf("agent response unusable: %v", err))
	}

	assertions := []Assertion{{
		Path:     "root.status",
		OK:       resp.Status == expStatus,
		Expected: expStatus.String(),
		Actual:   resp.Status.String(),
	}}

	expType, hasType, res, ok := e.expectedTaskType(cfg)
	if !ok {
		return res
	}
	if hasType {
		assertions = append(assertions, Assertion{
			Path:     "root.task_type",
			OK:       resp.TaskType == expType,
			Expected: expType.String(),
			Actual:   resp.TaskType.String(),
		})
	}

	// An error-status expectation carries no data to compare: the agent is
	// expected to have stopped, with or without partial data.
	if !expStatus.IsError() {
		expData, hasData := cfg.Expected["retrieved_data"]
		switch {
		case hasData:
			tree, err := normalize.BuildExpected(expData, cfg.ResultsSchema)
			if err != nil {
				return errorResult(e.Name(), fmt.Sprintf("bad expected retrieved_data: %v", err))
			}
			cmp := &Comparator{Strict: e.Strict}
			assertions = append(assertions, cmp.Compare(tree, resp.RetrievedData)...)
		case e.dataRequired(expStatus, expType, hasType):
			return errorResult(e.Name(), "success expectation for a retrieval task has no expected retrieved_data")
		}
	}

	if Passed(assertions) {
		return successResult(e.Name(), assertions)
	}
	return failureResult(e.Name(), assertions)
}

// dataRequired reports whether the expectation is incomplete without
// retrieved data: a success verdict on a retrieval task is meaningless
// unless the answer itself is checked.
func (e *AgentResponseEvaluator) dataRequired(status types.Status, taskType types.TaskType, hasType bool) bool {
	if status != types.StatusSuccess {
		return false
	}
	return !hasType || taskType == types.TaskTypeRetrieve
}

func (e *AgentResponseEvaluator) expectedStatus(cfg types.EvaluatorConfig) (types.Status, EvaluatorResult, bool) {
	raw, ok := cfg.Expected["status"]
	if !ok {
		return "", errorResult(e.Name(), "eval config has no expected status"), false
	}
	s, ok := raw.(string)
	if !ok {
		return "", errorResult(e.Name(), fmt.Sprintf("expected status is not a string: %v", raw)), false
	}
	status := types.Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", errorResult(e.Name(), fmt.Sprintf("unknown expected status %q", s)), false
	}
	return status, EvaluatorResult{}, true
}

func (e *AgentResponseEvaluator) expectedTaskType(cfg types.EvaluatorConfig) (types.TaskType, bool, EvaluatorResult, bool) {
	raw, present := cfg.Expected["task_type"]
	if !present {
		return "", false, EvaluatorResult{}, true
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, errorResult(e.Name(), fmt.Sprintf("expected task_type is not a string: %v", raw)), false
	}
	taskType := types.TaskType(strings.ToUpper(strings.TrimSpace(s)))
	if !taskType.IsValid() {
		return "", false, errorResult(e.Name(), fmt.Sprintf("unknown expected task_type %q", s)), false
	}
	return taskType, true, EvaluatorResult{}, true
}
