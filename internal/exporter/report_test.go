package exporter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/pkg/contracts/domain"
)

func TestReportWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned", "cleaning_report.txt")
	w := NewReportWriter(path)

	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	summary := domain.RunSummary{
		RunID:      "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		Datasets: []domain.DatasetStats{
			{
				Dataset:           domain.DatasetEnrolment,
				FilesFound:        3,
				RowsLoaded:        1000,
				RecordsExpanded:   3000,
				DuplicatesRemoved: 12,
				InvalidStates:     4,
				RowsSkipped:       map[string]int{"unknown_state": 4, "format": 2},
				FinalRows:         2982,
				UniqueStates:      36,
				Parts: []domain.PartFileInfo{
					{Path: "enrolment_cleaned_part1.csv", Rows: 2982, SizeMB: 1.5},
				},
			},
		},
		TypeTotals: map[domain.TransactionType]int64{
			domain.TransactionNewEnrollment: 123456,
		},
	}

	samples := map[domain.Dataset][]*apperrors.RowError{
		domain.DatasetEnrolment: {
			apperrors.NewUnknownStateError("a.csv", 7, "Nagpur"),
		},
	}

	require.NoError(t, w.Write(summary, samples))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "AADHAAR DATA CLEANING REPORT")
	assert.Contains(t, report, "Run ID:    run-1")
	assert.Contains(t, report, "ENROLMENT")
	assert.Contains(t, report, "Duplicates removed:           12")
	assert.Contains(t, report, "unknown_state:")
	assert.Contains(t, report, "enrolment_cleaned_part1.csv (2982 rows, 1.50 MB)")
	assert.Contains(t, report, "New Enrollment")
	assert.Contains(t, report, "123456")
	assert.Contains(t, report, "SKIPPED ROW SAMPLES")
	assert.Contains(t, report, "a.csv:7")
}

func TestReportWriter_NoSamplesSectionWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	w := NewReportWriter(path)

	summary := domain.RunSummary{
		RunID:      "run-2",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Datasets:   []domain.DatasetStats{{Dataset: domain.DatasetBiometric}},
	}

	require.NoError(t, w.Write(summary, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "SKIPPED ROW SAMPLES")
	assert.Contains(t, string(data), "BIOMETRIC")
}
