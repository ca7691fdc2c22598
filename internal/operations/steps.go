package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"aadhaarcli/internal/config"
	"aadhaarcli/internal/dataprocessing"
	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/internal/exporter"
	"aadhaarcli/internal/files"
	"aadhaarcli/internal/infrastructure"
	"aadhaarcli/internal/validation"
)

// DiscoverStep finds the raw input fragments for every selected dataset and
// validates the input and output locations before any cleaning starts.
type DiscoverStep struct {
	BaseStep
	paths  *config.Paths
	logger *slog.Logger
}

// NewDiscoverStep creates the discovery step.
func NewDiscoverStep(paths *config.Paths, logger *slog.Logger) *DiscoverStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscoverStep{
		BaseStep: NewBaseStep(StepIDDiscover, "Discover input fragments"),
		paths:    paths,
		logger:   infrastructure.WithComponent(logger, StepIDDiscover),
	}
}

// Execute enumerates each dataset's input directory. A selected dataset with
// no fragments at all fails the run; there is nothing to clean.
func (s *DiscoverStep) Execute(ctx context.Context, state *OperationState) error {
	validator := validation.NewFileValidator(s.logger)

	if err := validator.ValidateOutputDirectory(s.paths.CleanedDir); err != nil {
		return NewFatalError("output directory is not usable", err)
	}

	for _, ds := range state.Datasets() {
		if err := ctx.Err(); err != nil {
			return NewCancellationError(s.ID())
		}

		dir := s.paths.DatasetInputDir(ds)
		if err := validator.ValidateInputDirectory(dir, "*.csv"); err != nil {
			return NewFatalError(fmt.Sprintf("input directory for dataset %s", ds), err)
		}

		found, err := files.NewDiscovery(dir).FindInputFiles(".")
		if err != nil {
			return NewExecutionError(s.ID(), err)
		}

		s.logger.Info("Input fragments discovered",
			slog.String("dataset", string(ds)),
			slog.Int("files", len(found)))

		state.SetInputFiles(ds, found)
	}

	return nil
}

// CleanStep runs the cleaning pipeline for every selected dataset. Datasets
// are independent and run concurrently; each dataset's row order is
// preserved internally.
type CleanStep struct {
	BaseStep
	processor *dataprocessing.Processor
}

// NewCleanStep creates the cleaning step.
func NewCleanStep(processor *dataprocessing.Processor) *CleanStep {
	return &CleanStep{
		BaseStep:  NewBaseStep(StepIDClean, "Clean datasets"),
		processor: processor,
	}
}

// Validate requires discovery to have recorded input files.
func (s *CleanStep) Validate(state *OperationState) error {
	for _, ds := range state.Datasets() {
		if state.InputFiles(ds) == nil {
			return NewValidationError(s.ID(),
				fmt.Sprintf("no discovery result for dataset %s", ds))
		}
	}
	return nil
}

// Execute cleans all datasets under an errgroup and stores their results.
func (s *CleanStep) Execute(ctx context.Context, state *OperationState) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, ds := range state.Datasets() {
		ds := ds
		g.Go(func() error {
			result, err := s.processor.ProcessDataset(ctx, ds, state.InputFiles(ds))
			if err != nil {
				return fmt.Errorf("dataset %s: %w", ds, err)
			}
			state.SetResult(ds, result)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return NewExecutionError(s.ID(), err)
	}
	return nil
}

// ExportStep writes each dataset's cleaned records as part files, replacing
// any parts left over from a previous run.
type ExportStep struct {
	BaseStep
	paths   *config.Paths
	maxRows int
	logger  *slog.Logger
}

// NewExportStep creates the export step.
func NewExportStep(paths *config.Paths, maxRows int, logger *slog.Logger) *ExportStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportStep{
		BaseStep: NewBaseStep(StepIDExport, "Export cleaned part files"),
		paths:    paths,
		maxRows:  maxRows,
		logger:   infrastructure.WithComponent(logger, StepIDExport),
	}
}

// Validate requires cleaning results for every dataset.
func (s *ExportStep) Validate(state *OperationState) error {
	for _, ds := range state.Datasets() {
		if state.Result(ds) == nil {
			return NewValidationError(s.ID(),
				fmt.Sprintf("no cleaning result for dataset %s", ds))
		}
	}
	return nil
}

// Execute writes part files per dataset and records them on the state.
func (s *ExportStep) Execute(ctx context.Context, state *OperationState) error {
	manager := files.NewManager(s.paths.CleanedDir)
	splitter := exporter.NewSplitExporter(s.paths.CleanedDir, s.maxRows, s.logger)

	for _, ds := range state.Datasets() {
		if err := ctx.Err(); err != nil {
			return NewCancellationError(s.ID())
		}

		if err := manager.ClearCleanedOutput(".", ds.OutputBase()); err != nil {
			return NewExecutionError(s.ID(), err)
		}

		result := state.Result(ds)
		parts, err := splitter.Export(ds, result.Records)
		if err != nil {
			return NewExecutionError(s.ID(), err)
		}

		result.Stats.Parts = parts
		state.SetParts(ds, parts)
	}

	return nil
}

// SummarizeStep aggregates the run totals and writes the cleaning report.
type SummarizeStep struct {
	BaseStep
	reportPath string
	logger     *slog.Logger
}

// NewSummarizeStep creates the summarize step.
func NewSummarizeStep(reportPath string, logger *slog.Logger) *SummarizeStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummarizeStep{
		BaseStep:   NewBaseStep(StepIDSummarize, "Summarize run"),
		reportPath: reportPath,
		logger:     infrastructure.WithComponent(logger, StepIDSummarize),
	}
}

// Execute builds the run summary and renders the cleaning report.
func (s *SummarizeStep) Execute(ctx context.Context, state *OperationState) error {
	summarizer := dataprocessing.NewSummarizer()
	summary := summarizer.Summarize(state.RunID(), state.StartedAt(), time.Now(), state.Results())
	state.SetSummary(&summary)

	writer := exporter.NewReportWriter(s.reportPath)
	if err := writer.Write(summary, state.ErrorSamples()); err != nil {
		return NewExecutionError(s.ID(), err)
	}

	// Fold the per-dataset collectors into one run-level figure.
	skipped := apperrors.NewCollector(0)
	for _, result := range state.Results() {
		skipped.Merge(result.Errors)
	}

	s.logger.Info("Cleaning report written",
		slog.String("path", s.reportPath),
		slog.Int("final_rows", summary.TotalFinalRows()),
		slog.Int("rows_skipped", skipped.Total()))

	return nil
}
