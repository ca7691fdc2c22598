package operations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"aadhaarcli/internal/infrastructure"
	"aadhaarcli/pkg/contracts/domain"
)

// Manager executes the registered steps of a pipeline run in order, stopping
// at the first failure.
type Manager struct {
	registry *Registry
	tracer   *StepTracer
	logger   *slog.Logger
}

// NewManager creates a manager over the given registry.
func NewManager(registry *Registry, tracer *StepTracer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = NewStepTracer(nil)
	}
	return &Manager{
		registry: registry,
		tracer:   tracer,
		logger:   logger,
	}
}

// Run executes all registered steps against a fresh state for the given
// datasets and returns the state. The returned error is the first step
// failure, wrapped as an OperationError.
func (m *Manager) Run(ctx context.Context, datasets []domain.Dataset) (*OperationState, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.GetRunID(ctx)

	state := NewOperationState(runID, datasets)
	state.SetStatus(OperationStatusRunning)

	logger := m.logger.With(slog.String("run_id", runID))
	logger.Info("Operation started",
		slog.Int("steps", m.registry.Count()),
		slog.Int("datasets", len(datasets)))

	ctx, runSpan := m.tracer.TraceRun(ctx, runID, len(datasets))
	start := time.Now()

	runErr := m.runSteps(ctx, state, logger)

	finalRows := 0
	if summary := state.Summary(); summary != nil {
		finalRows = summary.TotalFinalRows()
	}
	m.tracer.RecordRunCompletion(runSpan, time.Since(start), finalRows, runErr)
	runSpan.End()

	switch {
	case runErr == nil:
		state.SetStatus(OperationStatusCompleted)
		logger.Info("Operation completed",
			slog.Duration("duration", time.Since(start)),
			slog.Int("final_rows", finalRows))
	case errors.Is(runErr, context.Canceled):
		state.SetStatus(OperationStatusCancelled)
		logger.Warn("Operation cancelled")
	default:
		state.SetStatus(OperationStatusFailed)
		logger.Error("Operation failed",
			slog.String("error", runErr.Error()))
	}

	return state, runErr
}

func (m *Manager) runSteps(ctx context.Context, state *OperationState, logger *slog.Logger) error {
	for _, step := range m.registry.List() {
		if err := ctx.Err(); err != nil {
			return err
		}

		stepState := state.StepState(step.ID(), step.Name())

		if err := step.Validate(state); err != nil {
			stepState.Fail(err)
			return WrapError(err, step.ID(), "step validation failed")
		}

		stepLogger := logger.With(slog.String("step", step.ID()))
		stepLogger.Info("Step started", slog.String("name", step.Name()))

		stepCtx, span := m.tracer.TraceStep(ctx, state.RunID(), step.ID())
		stepState.Start()

		err := step.Execute(stepCtx, state)

		m.tracer.RecordStepCompletion(span, stepState.Duration(), err)
		span.End()

		if err != nil {
			stepState.Fail(err)
			stepLogger.Error("Step failed",
				slog.Duration("duration", stepState.Duration()),
				slog.String("error", err.Error()))
			return WrapError(err, step.ID(), "")
		}

		stepState.Complete()
		stepLogger.Info("Step completed",
			slog.Duration("duration", stepState.Duration()))
	}

	return nil
}

// BuildRegistry wires the standard step sequence for a full pipeline run.
func BuildRegistry(discover *DiscoverStep, clean *CleanStep, export *ExportStep, summarize *SummarizeStep) (*Registry, error) {
	registry := NewRegistry()
	for _, step := range []Step{discover, clean, export, summarize} {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
