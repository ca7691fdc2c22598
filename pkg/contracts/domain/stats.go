package domain

import "time"

// PartFileInfo describes one written part of a split output file.
type PartFileInfo struct {
	Path   string  `json:"path"`
	Rows   int     `json:"rows"`
	SizeMB float64 `json:"size_mb"`
}

// DatasetStats captures the cleaning statistics for a single dataset,
// mirroring the figures surfaced in the cleaning report.
type DatasetStats struct {
	Dataset           Dataset        `json:"dataset"`
	FilesFound        int            `json:"files_found"`
	RowsLoaded        int            `json:"rows_loaded"`
	RecordsExpanded   int            `json:"records_expanded"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	InvalidStates     int            `json:"invalid_states"`
	RowsSkipped       map[string]int `json:"rows_skipped_by_kind"`
	FinalRows         int            `json:"final_rows"`
	UniqueStates      int            `json:"unique_states"`
	Parts             []PartFileInfo `json:"parts,omitempty"`
}

// TotalSkipped returns the number of rows dropped across all error kinds.
func (s DatasetStats) TotalSkipped() int {
	total := 0
	for _, n := range s.RowsSkipped {
		total += n
	}
	return total
}

// RunSummary aggregates a full pipeline run across datasets.
type RunSummary struct {
	RunID       string                    `json:"run_id"`
	StartedAt   time.Time                 `json:"started_at"`
	FinishedAt  time.Time                 `json:"finished_at"`
	Datasets    []DatasetStats            `json:"datasets"`
	TypeTotals  map[TransactionType]int64 `json:"type_totals"`
	StateTotals map[string]int64          `json:"state_totals"`
}

// TotalFinalRows returns the number of rows retained across all datasets.
func (s RunSummary) TotalFinalRows() int {
	total := 0
	for _, ds := range s.Datasets {
		total += ds.FinalRows
	}
	return total
}
