package eval

// Assertion records one comparison the evaluator performed, successful or
// not. Paths use root.key[index] notation into the expected structure.
type Assertion struct {
	Path     string `json:"path"`
	OK       bool   `json:"ok"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
	Message  string `json:"message,omitempty"`
}

// EvaluatorResult is the outcome of one evaluator run.
type EvaluatorResult struct {
	EvaluatorName string      `json:"evaluator_name"`
	Status        Status      `json:"status"`
	Score         float64     `json:"score"`
	ErrorMsg      *string     `json:"error_msg,omitempty"`
	Assertions    []Assertion `json:"assertions,omitempty"`
}

// TaskResult aggregates every evaluator run for one task. Its JSON form is
// deterministic: identical inputs produce byte-identical results.
type TaskResult struct {
	TaskID            int               `json:"task_id"`
	Status            Status            `json:"status"`
	Score             float64           `json:"score"`
	EvaluatorsResults []EvaluatorResult `json:"evaluators_results"`
}

// ScoreMode selects how evaluator scores fold into the task score.
type ScoreMode int

const (
	// ScoreAllOrNothing yields 1.0 only when every evaluator succeeded.
	ScoreAllOrNothing ScoreMode = iota

	// ScoreMean yields the mean of the evaluator scores.
	ScoreMean
)

// successResult builds a passing evaluator result.
func successResult(name string, assertions []Assertion) EvaluatorResult {
	return EvaluatorResult{
		EvaluatorName: name,
		Status:        StatusSuccess,
		Score:         1.0,
		Assertions:    assertions,
	}
}

// failureResult builds a failing evaluator result with its diagnostics.
func failureResult(name string, assertions []Assertion) EvaluatorResult {
	return EvaluatorResult{
		EvaluatorName: name,
		Status:        StatusFailure,
		Score:         0.0,
		Assertions:    assertions,
	}
}

// errorResult builds an evaluator result for a fault that prevented
// evaluation: a bad eval config or structurally unusable input.
func errorResult(name string, msg string) EvaluatorResult {
	return EvaluatorResult{
		EvaluatorName: name,
		Status:        StatusError,
		Score:         0.0,
		ErrorMsg:      &msg,
	}
}

// Fold combines evaluator results into a task result. The task status is the
// worst evaluator status (error over failure over success); the score follows
// the given mode.
func Fold(taskID int, results []EvaluatorResult, mode ScoreMode) *TaskResult {
	status := StatusSuccess
	sum := 0.0
	for _, r := range results {
		sum += r.Score
		switch r.Status {
		case StatusError:
			status = StatusError
		case StatusFailure:
			if status != StatusError {
				status = StatusFailure
			}
		}
	}

	score := 0.0
	switch mode {
	case ScoreMean:
		if len(results) > 0 {
			score = sum / float64(len(results))
		}
	default:
		if status == StatusSuccess && len(results) > 0 {
			score = 1.0
		}
	}

	return &TaskResult{
		TaskID:            taskID,
		Status:            status,
		Score:             score,
		EvaluatorsResults: results,
	}
}
