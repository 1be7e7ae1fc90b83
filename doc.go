// Package sdk provides the WebArena-Verified evaluation SDK.
//
// The SDK grades web-navigation agent task attempts. Given a task dataset,
// a site environment configuration, the agent's final response, and the
// recorded network trace of the attempt, it produces a deterministic verdict
// per task: success, failure, or error, with a score and per-evaluator
// assertion details.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Tasks: Dataset entries declaring an intent, the sites involved, and the
//     eval configs that define what counts as success
//   - Evaluators: Graders for one aspect of an attempt; the agent response
//     evaluator checks the final answer, the network event evaluator checks
//     that an expected request appears in the trace
//   - Normalization: Typed value comparison that tolerates formatting noise
//     (currencies, dates, durations, URLs) without loosening correctness
//   - Traces: Immutable network event recordings parsed from HAR files or
//     Playwright exports
//
// # Getting Started
//
// Load a configuration and a dataset, then create a Verifier:
//
//	import "github.com/webarena-verified/sdk"
//
//	cfg, err := types.LoadConfig("environments.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ds, err := dataset.Load("tasks.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	verifier, err := sdk.NewVerifier(cfg, ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer verifier.Close()
//
//	trace, _ := nettrace.FromFile("attempt.har")
//	result, err := verifier.EvaluateTask(ctx, 42, rawResponse, trace)
//
// # Error Handling
//
// The SDK uses sentinel errors and structured error types for robust error
// handling:
//
//	if err != nil {
//	    if errors.Is(err, sdk.ErrTaskNotFound) {
//	        // Handle unknown task ID
//	    }
//	    // Handle other errors
//	}
//
// Evaluator faults never surface as Go errors: a malformed eval config or an
// unparsable agent response yields an error-status entry inside the task
// result, so one evaluator cannot abort another.
//
// # Observability
//
// Task evaluations can be recorded through OpenTelemetry spans and metrics:
//
//	verifier, err := sdk.NewVerifier(cfg, ds,
//	    sdk.WithOTel(otel.Tracer("verifier"), otel.Meter("verifier")),
//	)
//
// Results can additionally be appended to a JSONL log file or persisted to
// Redis through the resultstore package.
//
// # Thread Safety
//
// A Verifier is safe for concurrent use. Evaluators are stateless; traces
// and datasets are immutable after construction.
package sdk
