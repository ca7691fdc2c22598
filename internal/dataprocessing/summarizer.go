package dataprocessing

import (
	"time"

	"aadhaarcli/pkg/contracts/domain"
)

// Summarizer aggregates cleaned records into run-level totals.
type Summarizer struct{}

// NewSummarizer creates a summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize builds the run summary from the per-dataset results: counts
// summed by transaction type and by resolved state across all datasets.
func (s *Summarizer) Summarize(runID string, startedAt, finishedAt time.Time, results []*DatasetResult) domain.RunSummary {
	summary := domain.RunSummary{
		RunID:       runID,
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
		TypeTotals:  make(map[domain.TransactionType]int64),
		StateTotals: make(map[string]int64),
	}

	for _, result := range results {
		if result == nil {
			continue
		}
		summary.Datasets = append(summary.Datasets, result.Stats)
		for _, rec := range result.Records {
			summary.TypeTotals[rec.TransactionType] += rec.Count
			summary.StateTotals[rec.State] += rec.Count
		}
	}

	return summary
}

// TotalsByType sums counts by transaction type over a flat record set. Used
// by the totals tool over already-cleaned output.
func TotalsByType(records []domain.TransactionRecord) map[domain.TransactionType]int64 {
	totals := make(map[domain.TransactionType]int64)
	for _, rec := range records {
		totals[rec.TransactionType] += rec.Count
	}
	return totals
}

// TotalsByState sums counts by state over a flat record set.
func TotalsByState(records []domain.TransactionRecord) map[string]int64 {
	totals := make(map[string]int64)
	for _, rec := range records {
		totals[rec.State] += rec.Count
	}
	return totals
}
