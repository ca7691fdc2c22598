package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"aadhaarcli/internal/infrastructure"
)

// StepTracer provides OpenTelemetry spans for operation and step execution.
// With tracing disabled every call is a cheap no-op.
type StepTracer struct {
	tracer trace.Tracer
}

// NewStepTracer creates a tracer from the initialized providers. Nil
// providers disable tracing.
func NewStepTracer(providers *infrastructure.OTelProviders) *StepTracer {
	if providers == nil || providers.Tracer == nil {
		return &StepTracer{tracer: noop.NewTracerProvider().Tracer("")}
	}
	return &StepTracer{tracer: providers.Tracer}
}

// TraceRun creates the span covering an entire pipeline run.
func (t *StepTracer) TraceRun(ctx context.Context, runID string, datasets int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "operation.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("run.datasets", datasets),
		),
	)
}

// TraceStep creates a span for one step execution.
func (t *StepTracer) TraceStep(ctx context.Context, runID, stepID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, fmt.Sprintf("operation.step.%s", stepID),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordStepCompletion finalizes a step span with its outcome.
func (t *StepTracer) RecordStepCompletion(span trace.Span, duration time.Duration, err error) {
	span.SetAttributes(
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "step completed")
}

// RecordRunCompletion finalizes the run span with its outcome and final row
// count.
func (t *StepTracer) RecordRunCompletion(span trace.Span, duration time.Duration, finalRows int, err error) {
	span.SetAttributes(
		attribute.Float64("run.duration_seconds", duration.Seconds()),
		attribute.Int("run.final_rows", finalRows),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "run completed")
}
