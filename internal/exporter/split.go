package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"aadhaarcli/pkg/contracts/domain"
)

// SplitExporter writes one dataset's cleaned records as sequential part
// files, each holding at most maxRows data rows so every part opens in Excel.
// A dataset that fits in one file still gets the _part1 suffix, keeping the
// naming uniform for downstream loaders.
type SplitExporter struct {
	writer  *CSVWriter
	maxRows int
	logger  *slog.Logger
}

// NewSplitExporter creates an exporter writing under cleanedDir.
func NewSplitExporter(cleanedDir string, maxRows int, logger *slog.Logger) *SplitExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SplitExporter{
		writer:  NewCSVWriter(cleanedDir),
		maxRows: maxRows,
		logger:  logger,
	}
}

// Export writes all records for a dataset, splitting at the row cap, and
// returns what was written. Records are emitted in the order given; the
// caller sorts.
func (e *SplitExporter) Export(dataset domain.Dataset, records []domain.TransactionRecord) ([]domain.PartFileInfo, error) {
	if e.maxRows < 1 {
		return nil, fmt.Errorf("invalid max rows per file: %d", e.maxRows)
	}

	var parts []domain.PartFileInfo
	part := 0

	for start := 0; start < len(records) || part == 0; start += e.maxRows {
		part++
		end := start + e.maxRows
		if end > len(records) {
			end = len(records)
		}

		name := fmt.Sprintf("%s_part%d.csv", dataset.OutputBase(), part)
		info, err := e.writePart(name, records[start:end])
		if err != nil {
			return nil, err
		}
		parts = append(parts, info)

		e.logger.Info("Part file written",
			slog.String("dataset", string(dataset)),
			slog.String("file", name),
			slog.Int("rows", info.Rows))
	}

	return parts, nil
}

func (e *SplitExporter) writePart(name string, records []domain.TransactionRecord) (domain.PartFileInfo, error) {
	stream, err := e.writer.CreateStreamWriter(name, domain.CSVHeader)
	if err != nil {
		return domain.PartFileInfo{}, err
	}

	for _, rec := range records {
		if err := stream.WriteRecord(rec.CSVRow()); err != nil {
			stream.Close()
			return domain.PartFileInfo{}, fmt.Errorf("failed to write record: %w", err)
		}
	}

	if err := stream.Close(); err != nil {
		return domain.PartFileInfo{}, err
	}

	fullPath := e.writer.resolvePath(name)
	stat, err := os.Stat(fullPath)
	if err != nil {
		return domain.PartFileInfo{}, fmt.Errorf("failed to stat %s: %w", fullPath, err)
	}

	return domain.PartFileInfo{
		Path:   filepath.ToSlash(fullPath),
		Rows:   len(records),
		SizeMB: float64(stat.Size()) / (1024 * 1024),
	}, nil
}
