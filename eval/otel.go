package eval

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// OTelRecorder captures spans and metrics for task evaluations. A nil or
// zero recorder is valid and records nothing, so instrumentation stays an
// opt-in concern.
type OTelRecorder struct {
	tracer  trace.Tracer
	meter   metric.Meter
	metrics *otelMetrics
}

// otelMetrics holds the metric instruments, created once per recorder and
// reused for every evaluation.
type otelMetrics struct {
	// scoreHistogram records task scores (0.0 to 1.0)
	scoreHistogram metric.Float64Histogram

	// durationHistogram records evaluation duration in milliseconds
	durationHistogram metric.Float64Histogram

	// countCounter increments for each task evaluated
	countCounter metric.Int64Counter
}

// NewOTelRecorder builds a recorder from a tracer and meter. Either may be
// nil to disable that half of the instrumentation.
func NewOTelRecorder(tracer trace.Tracer, meter metric.Meter) (*OTelRecorder, error) {
	r := &OTelRecorder{tracer: tracer, meter: meter}
	if meter == nil {
		return r, nil
	}

	m := &otelMetrics{}
	var err error

	m.scoreHistogram, err = meter.Float64Histogram(
		"eval.task.score",
		metric.WithDescription("Task score from 0.0 (worst) to 1.0 (best)"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}

	m.durationHistogram, err = meter.Float64Histogram(
		"eval.task.duration",
		metric.WithDescription("Task evaluation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	m.countCounter, err = meter.Int64Counter(
		"eval.task.count",
		metric.WithDescription("Number of tasks evaluated"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create count counter: %w", err)
	}

	r.metrics = m
	return r, nil
}

// RecordTask creates a span and records metrics for one evaluated task.
//
// The span carries the task ID, status, score, and per-evaluator scores; its
// status is OK for a passing task and Error otherwise. Metrics recorded:
// eval.task.score, eval.task.duration, and eval.task.count, each attributed
// with the task ID and final status.
//
// If the recorder is nil or unconfigured, RecordTask returns silently.
func (r *OTelRecorder) RecordTask(ctx context.Context, result *TaskResult, duration time.Duration) {
	if r == nil || (r.tracer == nil && r.meter == nil) {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Int("task.id", result.TaskID),
		attribute.String("task.status", string(result.Status)),
	}

	if r.tracer != nil {
		var span trace.Span
		ctx, span = r.tracer.Start(ctx, "eval.task")
		defer span.End()

		span.SetAttributes(attrs...)
		span.SetAttributes(
			attribute.Float64("task.score", result.Score),
			attribute.Float64("task.duration_ms", float64(duration.Milliseconds())),
			attribute.Int("task.evaluator_count", len(result.EvaluatorsResults)),
		)
		for _, er := range result.EvaluatorsResults {
			span.SetAttributes(
				attribute.Float64(fmt.Sprintf("task.evaluator.%s.score", er.EvaluatorName), er.Score),
			)
		}

		if result.Status == StatusSuccess {
			span.SetStatus(codes.Ok, "task passed")
		} else {
			span.SetStatus(codes.Error, fmt.Sprintf("task %s", result.Status))
		}
	}

	if r.metrics != nil {
		opts := metric.WithAttributes(attrs...)
		r.metrics.scoreHistogram.Record(ctx, result.Score, opts)
		r.metrics.durationHistogram.Record(ctx, float64(duration.Milliseconds()), opts)
		r.metrics.countCounter.Add(ctx, 1, opts)
	}
}
