package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"aadhaarcli/internal/config"
	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/internal/files"
	"aadhaarcli/internal/infrastructure"
	"aadhaarcli/internal/validation"
	"aadhaarcli/pkg/contracts/domain"
)

// DatasetResult is the outcome of cleaning one dataset: the retained records
// in final order, the cleaning statistics, and the collected row errors.
type DatasetResult struct {
	Dataset domain.Dataset
	Records []domain.TransactionRecord
	Stats   domain.DatasetStats
	Errors  *apperrors.Collector
}

// Processor runs the cleaning stages for individual datasets. It is safe for
// concurrent use across datasets; each ProcessDataset call builds its own
// stage state.
type Processor struct {
	pipeline config.PipelineConfig
	logger   *slog.Logger
}

// NewProcessor creates a processor for the given pipeline configuration.
// A nil logger defers to the context-aware logger at processing time.
func NewProcessor(pipeline config.PipelineConfig, logger *slog.Logger) *Processor {
	return &Processor{pipeline: pipeline, logger: logger}
}

// ProcessDataset cleans one dataset: every discovered fragment is read,
// normalized and canonicalized, then the merged records are deduplicated,
// validated and stably sorted Date, State, District. A dataset with zero
// input files is the one fatal condition (ErrNoInput).
func (p *Processor) ProcessDataset(ctx context.Context, dataset domain.Dataset, inputs []files.FileInfo) (*DatasetResult, error) {
	if len(inputs) == 0 {
		return nil, apperrors.ErrNoInput
	}

	logger := p.logger
	if logger == nil {
		logger = infrastructure.LoggerFromContext(ctx)
	} else if runID := infrastructure.GetRunID(ctx); runID != "" {
		logger = logger.With(slog.String("run_id", runID))
	}
	logger = logger.With(slog.String("dataset", string(dataset)))

	collector := apperrors.NewCollector(p.pipeline.ErrorSampleSize)
	preflight := validation.NewFileValidator(logger)
	reader := NewReader(logger)
	canon := NewCanonicalizer(p.pipeline.DateFormats, p.pipeline.PassThroughUnknown)

	from, to, err := p.pipeline.Window()
	if err != nil {
		return nil, err
	}
	validator := NewValidator(from, to)

	txType := dataset.TransactionType()
	stats := domain.DatasetStats{
		Dataset:    dataset,
		FilesFound: len(inputs),
	}

	var records []domain.TransactionRecord
	invalidStateCount := 0

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := preflight.ValidateInputFile(input.Path); err != nil {
			collector.Add(apperrors.NewFileError(input.Name, err))
			infrastructure.WithError(logger, err).Warn("Skipping fragment failing pre-flight checks",
				slog.String("file", input.Name))
			continue
		}

		table, readErr := reader.ReadFile(input.Path, collector)
		if readErr != nil {
			// A whole unusable file is still a row-level failure from the
			// run's point of view; later fragments are unaffected.
			if rowErr, ok := readErr.(*apperrors.RowError); ok {
				collector.Add(rowErr)
			}
			infrastructure.WithError(logger, readErr).Warn("Skipping unreadable fragment",
				slog.String("file", input.Name))
			continue
		}
		stats.RowsLoaded += len(table.Rows)

		raws, schemaErr := Normalize(table, collector)
		if schemaErr != nil {
			collector.Add(schemaErr)
			infrastructure.WithError(logger, schemaErr).Warn("Skipping fragment with missing columns",
				slog.String("file", input.Name))
			continue
		}
		stats.RecordsExpanded += len(raws)

		for _, raw := range raws {
			rec, rowErr := canon.Canonicalize(raw, txType)
			if rowErr != nil {
				collector.Add(rowErr)
				continue
			}
			if rec.State == domain.InvalidState {
				invalidStateCount++
			}
			records = append(records, rec)
		}

		logger.Debug("Fragment processed",
			slog.String("file", input.Name),
			slog.Int("rows", len(table.Rows)))
	}

	records, removed := Deduplicate(records)
	stats.DuplicatesRemoved = removed

	valid := records[:0]
	for _, rec := range records {
		if rowErr := validator.ValidateRecord(rec); rowErr != nil {
			collector.Add(rowErr)
			if !p.pipeline.PassThroughInvalid {
				continue
			}
		}
		valid = append(valid, rec)
	}
	records = valid

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Less(records[j])
	})

	stats.InvalidStates = invalidStateCount
	stats.RowsSkipped = collector.CountsByKind()
	stats.FinalRows = len(records)
	stats.UniqueStates = countUniqueStates(records)

	logger.Info("Dataset cleaned",
		slog.Int("files", stats.FilesFound),
		slog.Int("rows_loaded", stats.RowsLoaded),
		slog.Int("duplicates_removed", stats.DuplicatesRemoved),
		slog.Int("rows_skipped", collector.Total()),
		slog.Int("final_rows", stats.FinalRows))

	return &DatasetResult{
		Dataset: dataset,
		Records: records,
		Stats:   stats,
		Errors:  collector,
	}, nil
}

func countUniqueStates(records []domain.TransactionRecord) int {
	seen := make(map[string]struct{})
	for _, rec := range records {
		seen[rec.State] = struct{}{}
	}
	return len(seen)
}
