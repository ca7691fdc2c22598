package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aadhaarcli/internal/errors"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReader_ReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "fragment.csv",
		"date,state,district,pincode,age_0_5\n"+
			"01-03-2025,Bihar,Patna,800001,10\n"+
			"\n"+
			"02-03-2025,Bihar,Patna,800001,12\n")

	reader := NewReader(nil)
	collector := apperrors.NewCollector(10)

	table, err := reader.ReadFile(path, collector)
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "state", "district", "pincode", "age_0_5"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Rows[0].Line)
	assert.Equal(t, 4, table.Rows[1].Line)
	assert.Zero(t, collector.Total())
}

func TestReader_StripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "bom.csv",
		"\uFEFFdate,state,district,pincode,age_0_5\n"+
			"01-03-2025,Bihar,Patna,800001,10\n")

	reader := NewReader(nil)
	table, err := reader.ReadFile(path, apperrors.NewCollector(10))
	require.NoError(t, err)
	assert.Equal(t, "date", table.Header[0])
}

func TestReader_MalformedRowIsSkipped(t *testing.T) {
	dir := t.TempDir()
	// Unclosed quote makes the second data row unparseable.
	path := writeCSV(t, dir, "broken.csv",
		"date,state,district,pincode,age_0_5\n"+
			"01-03-2025,Bihar,Patna,800001,10\n"+
			"02-03-2025,\"Bihar,Patna,800001,12\n")

	reader := NewReader(nil)
	collector := apperrors.NewCollector(10)

	table, err := reader.ReadFile(path, collector)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
	assert.Equal(t, 1, collector.Count(apperrors.KindParse))
}

func TestReader_MissingFile(t *testing.T) {
	reader := NewReader(nil)
	_, err := reader.ReadFile(filepath.Join(t.TempDir(), "gone.csv"), apperrors.NewCollector(10))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindParse, apperrors.GetKind(err))
}
