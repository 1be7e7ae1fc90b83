package sdk

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/webarena-verified/sdk/eval"
	"github.com/webarena-verified/sdk/resultstore"
)

// VerifierOption configures a Verifier.
type VerifierOption func(*verifierConfig)

// verifierConfig holds configuration assembled from VerifierOptions.
type verifierConfig struct {
	logger       *slog.Logger
	resultLogger eval.Logger
	store        resultstore.Store
	tracer       trace.Tracer
	meter        metric.Meter
	strict       *bool
	scoreMode    eval.ScoreMode
	runID        string
}

// WithLogger sets a custom structured logger for the verifier.
// If not provided, a default JSON logger writing to stdout is used.
func WithLogger(logger *slog.Logger) VerifierOption {
	return func(c *verifierConfig) {
		c.logger = logger
	}
}

// WithResultLogger attaches a result logger that records every task result,
// such as a JSONL file logger created with eval.NewJSONLLogger.
func WithResultLogger(logger eval.Logger) VerifierOption {
	return func(c *verifierConfig) {
		c.resultLogger = logger
	}
}

// WithResultStore attaches a persistent store that receives every task
// result, keyed by task ID.
func WithResultStore(store resultstore.Store) VerifierOption {
	return func(c *verifierConfig) {
		c.store = store
	}
}

// WithOTel enables OpenTelemetry recording of task evaluations. Either
// argument may be nil to record only spans or only metrics.
func WithOTel(tracer trace.Tracer, meter metric.Meter) VerifierOption {
	return func(c *verifierConfig) {
		c.tracer = tracer
		c.meter = meter
	}
}

// WithStrictComparison controls whether retrieved data objects may carry
// keys beyond the expected ones. Strict comparison rejects extra keys.
// The default is strict.
func WithStrictComparison(strict bool) VerifierOption {
	return func(c *verifierConfig) {
		c.strict = &strict
	}
}

// WithScoreMode selects how evaluator scores fold into the task score.
// The default is eval.ScoreAllOrNothing.
func WithScoreMode(mode eval.ScoreMode) VerifierOption {
	return func(c *verifierConfig) {
		c.scoreMode = mode
	}
}

// WithRunID tags logged and stored results with an evaluation run
// identifier. If not provided, a random UUID is generated.
func WithRunID(runID string) VerifierOption {
	return func(c *verifierConfig) {
		c.runID = runID
	}
}
