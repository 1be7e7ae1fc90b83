package eval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestOTelRecorderTracer(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	rec, err := NewOTelRecorder(tp.Tracer("test"), nil)
	require.NoError(t, err)

	result := Fold(3, []EvaluatorResult{
		successResult("AgentResponseEvaluator", nil),
	}, ScoreAllOrNothing)

	// Must not panic and must tolerate a span-only configuration.
	rec.RecordTask(context.Background(), result, 100*time.Millisecond)
}

func TestOTelRecorderMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	rec, err := NewOTelRecorder(nil, meter)
	require.NoError(t, err)
	assert.NotNil(t, rec.metrics)

	result := Fold(4, []EvaluatorResult{
		failureResult("NetworkEventEvaluator", nil),
	}, ScoreAllOrNothing)

	rec.RecordTask(context.Background(), result, 50*time.Millisecond)
}

func TestOTelRecorderDisabled(t *testing.T) {
	var rec *OTelRecorder

	// A nil recorder records nothing and never panics.
	rec.RecordTask(context.Background(), Fold(5, nil, ScoreAllOrNothing), time.Millisecond)

	rec, err := NewOTelRecorder(nil, nil)
	require.NoError(t, err)
	rec.RecordTask(context.Background(), Fold(6, nil, ScoreAllOrNothing), time.Millisecond)
}
