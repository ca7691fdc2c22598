package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "aadhaarcli/internal/errors"
)

// RawRow is one data row of an input fragment, positioned for error reporting.
type RawRow struct {
	Line  int
	Cells []string
}

// RawTable is the parsed content of a single input fragment before any schema
// normalization: the header as delivered plus all data rows.
type RawTable struct {
	File   string
	Header []string
	Rows   []RawRow
}

// Reader parses raw dataset fragments. CSV and Excel fragments are supported;
// the format is chosen by file extension.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a reader. A nil logger falls back to slog.Default.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadFile parses one input fragment into a raw table. Malformed rows are
// reported to the collector and skipped; the returned error is non-nil only
// when the whole file is unusable.
func (r *Reader) ReadFile(path string, collector *apperrors.Collector) (*RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return r.readExcel(path, collector)
	default:
		return r.readCSV(path, collector)
	}
}

func (r *Reader) readCSV(path string, collector *apperrors.Collector) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Ragged rows are handled per-row rather than aborting the file.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewParseError(path, 1, err)
	}
	stripBOM(header)

	table := &RawTable{File: path, Header: header}
	line := 1
	for {
		line++
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErr := apperrors.NewParseError(path, line, err)
			collector.Add(rowErr)
			r.logger.Warn("Skipping malformed row",
				slog.String("file", filepath.Base(path)),
				slog.Int("line", line))
			continue
		}
		if isEmptyRow(cells) {
			continue
		}
		table.Rows = append(table.Rows, RawRow{Line: line, Cells: cells})
	}

	return table, nil
}

func (r *Reader) readExcel(path string, collector *apperrors.Collector) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParseError(path, 0, fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}

	// Portal exports sometimes carry title rows above the header. Scan the
	// first rows for one that names the core columns.
	headerRow := -1
	for i := 0; i < len(rows) && i < 10; i++ {
		rowText := strings.ToLower(strings.Join(rows[i], " "))
		if strings.Contains(rowText, "date") && strings.Contains(rowText, "state") {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, apperrors.NewParseError(path, 0, fmt.Errorf("no header row found in sheet %s", sheets[0]))
	}

	r.logger.Debug("Found header row",
		slog.String("file", filepath.Base(path)),
		slog.String("sheet", sheets[0]),
		slog.Int("row", headerRow+1))

	table := &RawTable{File: path, Header: rows[headerRow]}
	stripBOM(table.Header)
	for i := headerRow + 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		table.Rows = append(table.Rows, RawRow{Line: i + 1, Cells: rows[i]})
	}

	return table, nil
}

// stripBOM removes a UTF-8 byte order mark from the first header cell.
// Upstream CSV exports are written BOM-prefixed for Excel.
func stripBOM(header []string) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
