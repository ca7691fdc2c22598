package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aadhaarcli/pkg/contracts/domain"
)

func TestSummarizer_Summarize(t *testing.T) {
	enrolment := &DatasetResult{
		Dataset: domain.DatasetEnrolment,
		Records: []domain.TransactionRecord{
			record("2025-03-01", "Bihar", "Patna", 10),
			record("2025-03-02", "Odisha", "Cuttack", 5),
		},
		Stats: domain.DatasetStats{Dataset: domain.DatasetEnrolment, FinalRows: 2},
	}

	bio := record("2025-03-01", "Bihar", "Patna", 7)
	bio.TransactionType = domain.TransactionBiometricUpdate
	biometric := &DatasetResult{
		Dataset: domain.DatasetBiometric,
		Records: []domain.TransactionRecord{bio},
		Stats:   domain.DatasetStats{Dataset: domain.DatasetBiometric, FinalRows: 1},
	}

	started := time.Now().Add(-time.Minute)
	finished := time.Now()

	s := NewSummarizer()
	summary := s.Summarize("run-1", started, finished,
		[]*DatasetResult{enrolment, biometric, nil})

	assert.Equal(t, "run-1", summary.RunID)
	require.Len(t, summary.Datasets, 2)
	assert.Equal(t, 3, summary.TotalFinalRows())

	assert.Equal(t, int64(15), summary.TypeTotals[domain.TransactionNewEnrollment])
	assert.Equal(t, int64(7), summary.TypeTotals[domain.TransactionBiometricUpdate])
	assert.Equal(t, int64(17), summary.StateTotals["Bihar"])
	assert.Equal(t, int64(5), summary.StateTotals["Odisha"])
}

func TestTotalsByType(t *testing.T) {
	demo := record("2025-03-01", "Kerala", "Kollam", 3)
	demo.TransactionType = domain.TransactionDemographicUpdate

	totals := TotalsByType([]domain.TransactionRecord{
		record("2025-03-01", "Bihar", "Patna", 10),
		record("2025-03-02", "Bihar", "Patna", 2),
		demo,
	})

	assert.Equal(t, int64(12), totals[domain.TransactionNewEnrollment])
	assert.Equal(t, int64(3), totals[domain.TransactionDemographicUpdate])
	assert.NotContains(t, totals, domain.TransactionBiometricUpdate)
}

func TestTotalsByState(t *testing.T) {
	totals := TotalsByState([]domain.TransactionRecord{
		record("2025-03-01", "Bihar", "Patna", 10),
		record("2025-03-01", "Bihar", "Gaya", 4),
		record("2025-03-01", "Odisha", "Cuttack", 1),
	})

	assert.Equal(t, int64(14), totals["Bihar"])
	assert.Equal(t, int64(1), totals["Odisha"])
}
