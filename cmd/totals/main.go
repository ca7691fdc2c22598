package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"aadhaarcli/internal/config"
	"aadhaarcli/internal/dataprocessing"
	"aadhaarcli/internal/files"
	"aadhaarcli/internal/infrastructure"
	"aadhaarcli/pkg/contracts/domain"
)

// totals recomputes aggregate transaction counts from cleaned part files.
// It answers the quick questions the full cleaning report is too verbose
// for, without re-running the pipeline.
func main() {
	dir := flag.String("dir", "", "directory containing cleaned part files (defaults to data/cleaned relative to executable)")
	topStates := flag.Int("top", 10, "number of states to list (0 lists all)")
	flag.Parse()

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *dir == "" {
		*dir = paths.CleanedDir
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{Logging: infrastructure.DefaultConfig()}
		cfg.Logging.FilePath = paths.GetLogPath("totals.log")
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("totals.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Computing totals from cleaned output",
		slog.String("cleaned_dir", *dir))

	records, partCount, err := loadCleanedRecords(*dir, logger)
	if err != nil {
		logger.Error("Failed to load cleaned records", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "totals: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Println("No cleaned records found. Run the processor first.")
		return
	}

	logger.Info("Cleaned records loaded",
		slog.Int("parts", partCount),
		slog.Int("records", len(records)))

	printTotals(os.Stdout, records, *topStates)
}

// loadCleanedRecords reads every part file of every dataset under dir and
// rebuilds the consolidated records.
func loadCleanedRecords(dir string, logger *slog.Logger) ([]domain.TransactionRecord, int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	discovery := files.NewDiscovery(dir)

	var records []domain.TransactionRecord
	partCount := 0
	for _, ds := range domain.Datasets {
		parts, err := discovery.FindCleanedParts(".", ds.OutputBase())
		if err != nil {
			return nil, 0, fmt.Errorf("discovering %s parts: %w", ds, err)
		}
		for _, part := range parts {
			partRecords, err := readPartFile(part.Path)
			if err != nil {
				return nil, 0, fmt.Errorf("reading %s: %w", part.Name, err)
			}
			logger.Debug("Part file loaded",
				slog.String("file", part.Name),
				slog.Int("records", len(partRecords)))
			records = append(records, partRecords...)
			partCount++
		}
	}
	return records, partCount, nil
}

// readPartFile parses one cleaned CSV part back into records. Part files are
// machine-written, so any malformed row is an error rather than a skip.
func readPartFile(path string) ([]domain.TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	if len(header) != len(domain.CSVHeader) {
		return nil, fmt.Errorf("unexpected header with %d columns", len(header))
	}

	var records []domain.TransactionRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := parseCleanedRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseCleanedRow(row []string) (domain.TransactionRecord, error) {
	if len(row) != len(domain.CSVHeader) {
		return domain.TransactionRecord{}, fmt.Errorf("expected %d columns, got %d", len(domain.CSVHeader), len(row))
	}

	date, err := time.Parse("2006-01-02", row[0])
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("invalid date %q: %w", row[0], err)
	}
	count, err := strconv.ParseInt(row[6], 10, 64)
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("invalid count %q: %w", row[6], err)
	}

	return domain.TransactionRecord{
		Date:            date,
		State:           row[1],
		District:        row[2],
		PinCode:         row[3],
		AgeGroup:        domain.AgeGroup(row[4]),
		TransactionType: domain.TransactionType(row[5]),
		Count:           count,
	}, nil
}

// printTotals writes the aggregate tables, transaction types in reporting
// order and states by descending count.
func printTotals(w io.Writer, records []domain.TransactionRecord, topStates int) {
	typeTotals := dataprocessing.TotalsByType(records)
	stateTotals := dataprocessing.TotalsByState(records)

	fmt.Fprintf(w, "Records: %d\n\n", len(records))

	fmt.Fprintln(w, "TOTALS BY TRANSACTION TYPE")
	var grand int64
	for _, tt := range domain.TransactionTypes {
		fmt.Fprintf(w, "  %-20s %15s\n", tt, formatCount(typeTotals[tt]))
		grand += typeTotals[tt]
	}
	fmt.Fprintf(w, "  %-20s %15s\n", "TOTAL", formatCount(grand))

	type stateTotal struct {
		state string
		count int64
	}
	states := make([]stateTotal, 0, len(stateTotals))
	for state, count := range stateTotals {
		states = append(states, stateTotal{state, count})
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].count != states[j].count {
			return states[i].count > states[j].count
		}
		return states[i].state < states[j].state
	})
	if topStates > 0 && topStates < len(states) {
		states = states[:topStates]
	}

	fmt.Fprintf(w, "\nTOTALS BY STATE (%d of %d)\n", len(states), len(stateTotals))
	for _, st := range states {
		fmt.Fprintf(w, "  %-30s %15s\n", st.state, formatCount(st.count))
	}
}

// countPrinter renders counts with thousands separators.
var countPrinter = message.NewPrinter(language.English)

func formatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}
