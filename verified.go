package sdk

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/webarena-verified/sdk/dataset"
	"github.com/webarena-verified/sdk/eval"
	"github.com/webarena-verified/sdk/nettrace"
	"github.com/webarena-verified/sdk/resultstore"
	"github.com/webarena-verified/sdk/types"
)

// Verifier grades agent task attempts against their eval configs. It is the
// caller-facing entry point of the SDK: construct one from a site
// configuration and a task dataset, then call EvaluateTask once per attempt.
//
// Example:
//
//	verifier, err := sdk.NewVerifier(cfg, ds,
//	    sdk.WithLogger(logger),
//	    sdk.WithResultLogger(jsonlLogger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer verifier.Close()
//
//	result, err := verifier.EvaluateTask(ctx, 42, rawResponse, trace)
//
// A Verifier is safe for concurrent use.
type Verifier struct {
	config  *types.Config
	dataset *dataset.Dataset

	logger       *slog.Logger
	resultLogger eval.Logger
	store        resultstore.Store
	recorder     *eval.OTelRecorder

	strict    bool
	scoreMode eval.ScoreMode
	runID     string
}

// NewVerifier creates a Verifier for the given site configuration and task
// dataset. Both are required; everything else is configured through options.
func NewVerifier(config *types.Config, ds *dataset.Dataset, opts ...VerifierOption) (*Verifier, error) {
	if config == nil {
		return nil, NewConfigurationError("NewVerifier", ErrInvalidConfig).
			WithContext(map[string]any{"reason": "nil site configuration"})
	}
	if ds == nil {
		return nil, NewConfigurationError("NewVerifier", ErrInvalidConfig).
			WithContext(map[string]any{"reason": "nil dataset"})
	}

	cfg := &verifierConfig{scoreMode: eval.ScoreAllOrNothing}
	for _, opt := range opts {
		opt(cfg)
	}

	// Create default logger if not provided
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if cfg.runID == "" {
		cfg.runID = uuid.NewString()
	}

	strict := true
	if cfg.strict != nil {
		strict = *cfg.strict
	}

	v := &Verifier{
		config:       config,
		dataset:      ds,
		logger:       cfg.logger,
		resultLogger: cfg.resultLogger,
		store:        cfg.store,
		strict:       strict,
		scoreMode:    cfg.scoreMode,
		runID:        cfg.runID,
	}

	if cfg.tracer != nil || cfg.meter != nil {
		recorder, err := eval.NewOTelRecorder(cfg.tracer, cfg.meter)
		if err != nil {
			return nil, NewInternalError("NewVerifier", err)
		}
		v.recorder = recorder
	}

	return v, nil
}

// RunID returns the identifier that tags every result this verifier stores.
func (v *Verifier) RunID() string {
	return v.runID
}

// EvaluateTask grades one task attempt. It looks up the task by ID, runs
// every evaluator declared in the task's eval config against the agent's raw
// response and the recorded network trace, and folds the evaluator results
// into a single task result.
//
// Evaluator faults (unparsable responses, malformed eval configs) surface as
// error-status entries inside the returned result, not as Go errors. A Go
// error is returned only when the task does not exist, an evaluator name
// cannot be resolved, or an attached sink fails.
func (v *Verifier) EvaluateTask(ctx context.Context, taskID int, agentResponseRaw string, trace *nettrace.Trace) (*eval.TaskResult, error) {
	const op = "Verifier.EvaluateTask"

	task, ok := v.dataset.Get(taskID)
	if !ok {
		return nil, NewNotFoundError(op, ErrTaskNotFound).
			WithContext(map[string]any{"task_id": taskID})
	}

	start := time.Now()
	in := eval.Input{
		Task:        task,
		Config:      v.config,
		RawResponse: agentResponseRaw,
		Trace:       trace,
	}

	results := make([]eval.EvaluatorResult, 0, len(task.Eval))
	for _, ec := range task.Eval {
		evaluator, err := eval.New(ec.Evaluator)
		if err != nil {
			return nil, NewNotFoundError(op, ErrEvaluatorNotFound).
				WithContext(map[string]any{"task_id": taskID, "evaluator": ec.Evaluator})
		}
		if are, ok := evaluator.(*eval.AgentResponseEvaluator); ok {
			are.Strict = v.strict
		}
		results = append(results, evaluator.Evaluate(ctx, in, ec))
	}

	result := eval.Fold(taskID, results, v.scoreMode)
	duration := time.Since(start)

	v.logger.Info("task evaluated",
		"run_id", v.runID,
		"task_id", taskID,
		"status", result.Status,
		"score", result.Score,
		"evaluators", len(result.EvaluatorsResults),
		"duration_ms", duration.Milliseconds())

	if v.resultLogger != nil {
		if err := v.resultLogger.Log(result, duration); err != nil {
			return result, NewStorageError(op, err).
				WithContext(map[string]any{"task_id": taskID, "sink": "result log"})
		}
	}
	if v.store != nil {
		if err := v.store.Put(ctx, v.runID, result); err != nil {
			return result, NewStorageError(op, ErrStore).
				WithContext(map[string]any{"task_id": taskID, "cause": err.Error()})
		}
	}
	v.recorder.RecordTask(ctx, result, duration)

	return result, nil
}

// EvaluateAll grades a batch of task attempts, keyed by task ID. Traces may
// be nil or missing entries for tasks without network expectations. Tasks
// absent from the dataset or failing a sink stop the batch and return the
// results collected so far.
func (v *Verifier) EvaluateAll(ctx context.Context, responses map[int]string, traces map[int]*nettrace.Trace) ([]*eval.TaskResult, error) {
	taskIDs := make([]int, 0, len(responses))
	for id := range responses {
		taskIDs = append(taskIDs, id)
	}
	sort.Ints(taskIDs)

	results := make([]*eval.TaskResult, 0, len(taskIDs))
	for _, id := range taskIDs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := v.EvaluateTask(ctx, id, responses[id], traces[id])
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Close releases the attached sinks. The verifier must not be used after
// Close returns.
func (v *Verifier) Close() error {
	var firstErr error
	if v.resultLogger != nil {
		if err := v.resultLogger.Close(); err != nil {
			firstErr = err
		}
	}
	if v.store != nil {
		if err := v.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
