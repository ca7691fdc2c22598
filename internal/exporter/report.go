package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/pkg/contracts/domain"
)

// ReportWriter renders the plain-text cleaning report.
type ReportWriter struct {
	path string
}

// NewReportWriter creates a report writer targeting the given file path.
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

const reportRule = "======================================================================"

// Write renders the cleaning report for a finished run: per-dataset figures,
// rows skipped by error kind, the written part files, and a bounded sample of
// the skipped rows.
func (w *ReportWriter) Write(summary domain.RunSummary, samples map[domain.Dataset][]*apperrors.RowError) error {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	b.WriteString("AADHAAR DATA CLEANING REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", summary.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run ID:    %s\n", summary.RunID)
	fmt.Fprintf(&b, "Duration:  %s\n", summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))
	b.WriteString(reportRule + "\n")

	for _, stats := range summary.Datasets {
		fmt.Fprintf(&b, "\n%s\n", stats.Dataset.DisplayName())
		b.WriteString(strings.Repeat("-", 40) + "\n")
		fmt.Fprintf(&b, "  Input files:        %12d\n", stats.FilesFound)
		fmt.Fprintf(&b, "  Rows loaded:        %12d\n", stats.RowsLoaded)
		fmt.Fprintf(&b, "  Records expanded:   %12d\n", stats.RecordsExpanded)
		fmt.Fprintf(&b, "  Duplicates removed: %12d\n", stats.DuplicatesRemoved)
		fmt.Fprintf(&b, "  Invalid states:     %12d\n", stats.InvalidStates)
		fmt.Fprintf(&b, "  Rows skipped:       %12d\n", stats.TotalSkipped())
		for _, kind := range apperrors.Kinds {
			if n := stats.RowsSkipped[string(kind)]; n > 0 {
				fmt.Fprintf(&b, "    %-18s%12d\n", kind+":", n)
			}
		}
		fmt.Fprintf(&b, "  Final rows:         %12d\n", stats.FinalRows)
		fmt.Fprintf(&b, "  Unique states:      %12d\n", stats.UniqueStates)

		if len(stats.Parts) > 0 {
			b.WriteString("  Output files:\n")
			for _, part := range stats.Parts {
				fmt.Fprintf(&b, "    %s (%d rows, %.2f MB)\n",
					filepath.Base(part.Path), part.Rows, part.SizeMB)
			}
		}
	}

	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("TOTALS BY TRANSACTION TYPE\n")
	b.WriteString(reportRule + "\n")
	for _, txType := range domain.TransactionTypes {
		if total, ok := summary.TypeTotals[txType]; ok {
			fmt.Fprintf(&b, "  %-20s %15d\n", txType, total)
		}
	}

	w.writeSamples(&b, samples)

	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("CLEANING OPERATIONS PERFORMED:\n")
	b.WriteString(reportRule + "\n")
	b.WriteString("1. Removed exact duplicate records\n")
	b.WriteString("2. Standardized state names to official spellings\n")
	b.WriteString("3. Rejected or marked invalid state entries (city names, numbers)\n")
	b.WriteString("4. Standardized district names (Title Case)\n")
	b.WriteString("5. Converted dates to YYYY-MM-DD format\n")
	b.WriteString("6. Padded pincodes to 6 digits\n")
	b.WriteString("7. Sorted records by Date, State, District\n")
	b.WriteString("8. Split large outputs to comply with the Excel row limit\n")

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(w.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write cleaning report: %w", err)
	}
	return nil
}

func (w *ReportWriter) writeSamples(b *strings.Builder, samples map[domain.Dataset][]*apperrors.RowError) {
	hasSamples := false
	for _, errs := range samples {
		if len(errs) > 0 {
			hasSamples = true
			break
		}
	}
	if !hasSamples {
		return
	}

	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("SKIPPED ROW SAMPLES\n")
	b.WriteString(reportRule + "\n")
	for _, ds := range domain.Datasets {
		errs := samples[ds]
		if len(errs) == 0 {
			continue
		}
		fmt.Fprintf(b, "\n%s\n", ds.DisplayName())
		for _, rowErr := range errs {
			fmt.Fprintf(b, "  %s\n", rowErr.Error())
		}
	}
}
