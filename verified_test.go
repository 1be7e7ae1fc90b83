package sdk

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/webarena-verified/sdk/dataset"
	"github.com/webarena-verified/sdk/eval"
	"github.com/webarena-verified/sdk/nettrace"
	"github.com/webarena-verified/sdk/types"
)

func testConfig() *types.Config {
	return &types.Config{
		Environments: map[types.Site]types.EnvironmentConfig{
			types.SiteShopping: {URLs: []string{"http://shop.example.com"}},
		},
	}
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromTasks([]types.Task{
		{
			TaskID: 1,
			Sites:  []types.Site{types.SiteShopping},
			Intent: "Open the cart",
			Eval: []types.EvaluatorConfig{
				{
					Evaluator: "AgentResponseEvaluator",
					Expected:  map[string]any{"status": "SUCCESS", "task_type": "NAVIGATE"},
				},
			},
		},
		{
			TaskID: 2,
			Sites:  []types.Site{types.SiteShopping},
			Intent: "Open the cart and confirm the request",
			Eval: []types.EvaluatorConfig{
				{
					Evaluator: "AgentResponseEvaluator",
					Expected:  map[string]any{"status": "SUCCESS", "task_type": "NAVIGATE"},
				},
				{
					Evaluator: "NetworkEventEvaluator",
					Expected:  map[string]any{"url": "__SHOPPING__/cart"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("FromTasks: %v", err)
	}
	return ds
}

const navigateSuccess = `{"task_type": "NAVIGATE", "status": "SUCCESS"}`

func cartTrace() *nettrace.Trace {
	return nettrace.FromEvents([]nettrace.Event{
		{Method: "GET", URL: "http://shop.example.com/cart", Status: 200},
	})
}

// TestNewVerifierValidation verifies that both constructor inputs are required.
func TestNewVerifierValidation(t *testing.T) {
	ds := testDataset(t)

	if _, err := NewVerifier(nil, ds); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil config: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewVerifier(testConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil dataset: err = %v, want ErrInvalidConfig", err)
	}
}

// TestEvaluateTask covers the pass, fail, and unknown-task paths.
func TestEvaluateTask(t *testing.T) {
	verifier, err := NewVerifier(testConfig(), testDataset(t))
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	defer verifier.Close()

	ctx := context.Background()

	t.Run("passing attempt", func(t *testing.T) {
		result, err := verifier.EvaluateTask(ctx, 1, navigateSuccess, nil)
		if err != nil {
			t.Fatalf("EvaluateTask: %v", err)
		}
		if result.Status != eval.StatusSuccess || result.Score != 1.0 {
			t.Errorf("result = %s/%.1f, want success/1.0", result.Status, result.Score)
		}
	})

	t.Run("failing attempt", func(t *testing.T) {
		result, err := verifier.EvaluateTask(ctx, 1, `{"task_type": "NAVIGATE", "status": "FAILURE"}`, nil)
		if err != nil {
			t.Fatalf("EvaluateTask: %v", err)
		}
		if result.Status != eval.StatusFailure || result.Score != 0.0 {
			t.Errorf("result = %s/%.1f, want failure/0.0", result.Status, result.Score)
		}
	})

	t.Run("unparsable response is an error verdict not a Go error", func(t *testing.T) {
		result, err := verifier.EvaluateTask(ctx, 1, "not json", nil)
		if err != nil {
			t.Fatalf("EvaluateTask: %v", err)
		}
		if result.Status != eval.StatusError {
			t.Errorf("status = %s, want error", result.Status)
		}
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := verifier.EvaluateTask(ctx, 999, navigateSuccess, nil)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("err = %v, want ErrTaskNotFound", err)
		}
	})
}

// TestEvaluateTaskMultipleEvaluators verifies that every declared evaluator
// runs and that the fold honors the configured score mode.
func TestEvaluateTaskMultipleEvaluators(t *testing.T) {
	ctx := context.Background()

	t.Run("all evaluators pass", func(t *testing.T) {
		verifier, err := NewVerifier(testConfig(), testDataset(t))
		if err != nil {
			t.Fatalf("NewVerifier: %v", err)
		}
		defer verifier.Close()

		result, err := verifier.EvaluateTask(ctx, 2, navigateSuccess, cartTrace())
		if err != nil {
			t.Fatalf("EvaluateTask: %v", err)
		}
		if len(result.EvaluatorsResults) != 2 {
			t.Fatalf("evaluator results = %d, want 2", len(result.EvaluatorsResults))
		}
		if result.Status != eval.StatusSuccess || result.Score != 1.0 {
			t.Errorf("result = %s/%.1f, want success/1.0", result.Status, result.Score)
		}
	})

	t.Run("all or nothing zeroes a partial pass", func(t *testing.T) {
		verifier, err := NewVerifier(testConfig(), testDataset(t))
		if err != nil {
			t.Fatalf("NewVerifier: %v", err)
		}
		defer verifier.Close()

		// No trace, so the network evaluator fails while the response passes.
		result, err := verifier.EvaluateTask(ctx, 2, navigateSuccess, nil)
		if err != nil {
			t.Fatalf("EvaluateTask: %v", err)
		}
		if result.Status != eval.StatusFailure || result.Score != 0.0 {
			t.Errorf("result = %s/%.1f, want failure/0.0", result.Status, result.Score)
		}
	})

	t.Run("mean scoring keeps partial credit", func(t *testing.T) {
		verifier, err := NewVerifier(testConfig(), testDataset(t), WithScoreMode(eval.ScoreMean))
		if err != nil {
			t.Fatalf("NewVerifier: %v", err)
		}
		defer verifier.Close()

		result, err := verifier.EvaluateTask(ctx, 2, navigateSuccess, nil)
		if err != nil {
			t.Fatalf("EvaluateTask: %v", err)
		}
		if result.Status != eval.StatusFailure || result.Score != 0.5 {
			t.Errorf("result = %s/%.2f, want failure/0.50", result.Status, result.Score)
		}
	})
}

// TestEvaluateAll verifies batch evaluation ordered by task ID.
func TestEvaluateAll(t *testing.T) {
	verifier, err := NewVerifier(testConfig(), testDataset(t))
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	defer verifier.Close()

	results, err := verifier.EvaluateAll(context.Background(),
		map[int]string{2: navigateSuccess, 1: navigateSuccess},
		map[int]*nettrace.Trace{2: cartTrace()})
	if err != nil {
		t.Fatalf("EvaluateAll: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].TaskID != 1 || results[1].TaskID != 2 {
		t.Errorf("order = [%d, %d], want [1, 2]", results[0].TaskID, results[1].TaskID)
	}
	for _, r := range results {
		if r.Status != eval.StatusSuccess {
			t.Errorf("task %d status = %s, want success", r.TaskID, r.Status)
		}
	}
}

// TestVerifierResultLogger verifies results land in the attached JSONL log.
func TestVerifierResultLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	logger, err := eval.NewJSONLLogger(path)
	if err != nil {
		t.Fatalf("NewJSONLLogger: %v", err)
	}

	verifier, err := NewVerifier(testConfig(), testDataset(t), WithResultLogger(logger))
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	if _, err := verifier.EvaluateTask(context.Background(), 1, navigateSuccess, nil); err != nil {
		t.Fatalf("EvaluateTask: %v", err)
	}
	if err := verifier.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"task_id":1`) {
		t.Errorf("log missing task result: %s", data)
	}
}

// TestVerifierRunID verifies explicit and generated run identifiers.
func TestVerifierRunID(t *testing.T) {
	verifier, err := NewVerifier(testConfig(), testDataset(t), WithRunID("run-7"))
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	if verifier.RunID() != "run-7" {
		t.Errorf("RunID = %q, want %q", verifier.RunID(), "run-7")
	}

	generated, err := NewVerifier(testConfig(), testDataset(t))
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	if generated.RunID() == "" {
		t.Error("RunID should be generated when not provided")
	}
}
