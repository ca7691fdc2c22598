package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aadhaarcli/pkg/contracts/domain"
)

func makeRecords(n int) []domain.TransactionRecord {
	records := make([]domain.TransactionRecord, n)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range records {
		records[i] = domain.TransactionRecord{
			Date:            base.AddDate(0, 0, i),
			State:           "Bihar",
			District:        "Patna",
			PinCode:         "800001",
			AgeGroup:        domain.AgeGroup18Plus,
			TransactionType: domain.TransactionNewEnrollment,
			Count:           int64(i),
		}
	}
	return records
}

func readPart(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSplitExporter_SinglePart(t *testing.T) {
	dir := t.TempDir()
	e := NewSplitExporter(dir, 100, nil)

	parts, err := e.Export(domain.DatasetBiometric, makeRecords(3))
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, 3, parts[0].Rows)

	rows := readPart(t, filepath.Join(dir, "biometric_cleaned_part1.csv"))
	require.Len(t, rows, 4)
	assert.Equal(t, domain.CSVHeader, rows[0])
	assert.Equal(t, "2025-03-01", rows[1][0])
}

func TestSplitExporter_SplitsAtCap(t *testing.T) {
	dir := t.TempDir()
	e := NewSplitExporter(dir, 4, nil)

	parts, err := e.Export(domain.DatasetEnrolment, makeRecords(10))
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Equal(t, 4, parts[0].Rows)
	assert.Equal(t, 4, parts[1].Rows)
	assert.Equal(t, 2, parts[2].Rows)

	// Every part repeats the header; data is split sequentially with no loss.
	total := 0
	for i := range parts {
		rows := readPart(t, filepath.Join(dir,
			"enrolment_cleaned_part"+string(rune('1'+i))+".csv"))
		assert.Equal(t, domain.CSVHeader, rows[0])
		total += len(rows) - 1
	}
	assert.Equal(t, 10, total)
}

func TestSplitExporter_ExactMultiple(t *testing.T) {
	dir := t.TempDir()
	e := NewSplitExporter(dir, 5, nil)

	parts, err := e.Export(domain.DatasetDemographic, makeRecords(10))
	require.NoError(t, err)
	assert.Len(t, parts, 2)
}

func TestSplitExporter_EmptyDatasetStillWritesPart1(t *testing.T) {
	dir := t.TempDir()
	e := NewSplitExporter(dir, 5, nil)

	parts, err := e.Export(domain.DatasetBiometric, nil)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Zero(t, parts[0].Rows)

	rows := readPart(t, filepath.Join(dir, "biometric_cleaned_part1.csv"))
	require.Len(t, rows, 1)
	assert.Equal(t, domain.CSVHeader, rows[0])
}

func TestSplitExporter_InvalidCap(t *testing.T) {
	e := NewSplitExporter(t.TempDir(), 0, nil)
	_, err := e.Export(domain.DatasetBiometric, makeRecords(1))
	assert.Error(t, err)
}
