package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"aadhaarcli/internal/config"
	"aadhaarcli/internal/dataprocessing"
	"aadhaarcli/internal/infrastructure"
	"aadhaarcli/internal/operations"
	"aadhaarcli/pkg/contracts"
	"aadhaarcli/pkg/contracts/domain"
)

// timeRounding keeps printed durations readable.
const timeRounding = time.Millisecond

func main() {
	baseDir := flag.String("base", "", "base directory for data/ and logs/ (defaults to the executable directory)")
	configFile := flag.String("config", "", "config YAML path (defaults to config.yaml next to the executable)")
	datasetsFlag := flag.String("datasets", "", "comma-separated datasets to process (enrolment,biometric,demographic); empty means all")
	enableTrace := flag.Bool("trace", false, "export run traces to logs/trace.log")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	// Initialize paths first to get default directories
	paths, err := resolvePaths(*baseDir)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{Logging: infrastructure.DefaultConfig()}
		cfg.Logging.FilePath = paths.GetLogPath("process.log")
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("process.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	datasets, err := selectDatasets(*datasetsFlag, cfg.Pipeline.Datasets)
	if err != nil {
		logger.Error("Invalid dataset selection", slog.String("error", err.Error()))
		os.Exit(1)
	}

	providers, traceFile, err := setupTracing(*enableTrace, paths, logger)
	if err != nil {
		logger.Error("Failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			logger.Warn("Trace shutdown failed", slog.String("error", err.Error()))
		}
		if traceFile != nil {
			traceFile.Close()
		}
	}()

	logger.Info("Starting Aadhaar dataset cleaning",
		slog.String("version", contracts.Version),
		slog.String("input_dir", paths.InputDir),
		slog.String("cleaned_dir", paths.CleanedDir),
		slog.Int("datasets", len(datasets)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processor := dataprocessing.NewProcessor(cfg.Pipeline, logger)
	registry, err := operations.BuildRegistry(
		operations.NewDiscoverStep(paths, logger),
		operations.NewCleanStep(processor),
		operations.NewExportStep(paths, cfg.Pipeline.MaxRowsPerFile, logger),
		operations.NewSummarizeStep(paths.CleaningReportPath(), logger),
	)
	if err != nil {
		logger.Error("Failed to build step registry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	manager := operations.NewManager(registry, operations.NewStepTracer(providers), logger)
	state, runErr := manager.Run(ctx, datasets)

	if summary := state.Summary(); summary != nil {
		printSummary(os.Stdout, summary, paths.CleaningReportPath())
	}

	if runErr != nil {
		logger.Error("Cleaning run failed",
			slog.String("status", string(state.Status())),
			slog.String("error", runErr.Error()))
		fmt.Fprintf(os.Stderr, "Run %s: %v\n", state.Status(), runErr)
		os.Exit(1)
	}

	logger.Info("Cleaning run completed", slog.String("run_id", state.RunID()))
}

// resolvePaths roots the directory layout at the -base flag when given,
// otherwise at the executable directory (or AADHAAR_BASE_DIR).
func resolvePaths(baseDir string) (*config.Paths, error) {
	if baseDir != "" {
		return config.NewPaths(baseDir), nil
	}
	return config.GetPaths()
}

// loadConfig resolves the effective configuration, preferring an explicit
// -config path over the default location next to the executable.
func loadConfig(configFile string) (*config.Config, error) {
	if configFile != "" {
		return config.LoadFrom(configFile)
	}
	return config.Load()
}

// selectDatasets resolves the datasets to process. The command-line flag wins
// over the config file; both empty means all three datasets.
func selectDatasets(flagValue string, configured []string) ([]domain.Dataset, error) {
	names := configured
	if flagValue != "" {
		names = strings.Split(flagValue, ",")
	}
	if len(names) == 0 {
		return append([]domain.Dataset(nil), domain.Datasets...), nil
	}

	seen := make(map[domain.Dataset]bool, len(names))
	var datasets []domain.Dataset
	for _, name := range names {
		ds, err := domain.ParseDataset(strings.TrimSpace(strings.ToLower(name)))
		if err != nil {
			return nil, err
		}
		if seen[ds] {
			continue
		}
		seen[ds] = true
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

// setupTracing initializes the span exporter writing to logs/trace.log.
// Returns nil providers when tracing is disabled, which the step tracer
// downgrades to no-op spans.
func setupTracing(enabled bool, paths *config.Paths, logger *slog.Logger) (*infrastructure.OTelProviders, *os.File, error) {
	if !enabled {
		return nil, nil, nil
	}

	traceFile, err := os.OpenFile(paths.GetLogPath("trace.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open trace log: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		ServiceName:    infrastructure.ServiceName,
		ServiceVersion: contracts.Version,
		Enabled:        true,
		Writer:         traceFile,
	}, logger)
	if err != nil {
		traceFile.Close()
		return nil, nil, err
	}
	return providers, traceFile, nil
}

// printSummary writes the human-readable run recap to stdout. The full
// breakdown lives in the cleaning report next to the part files.
func printSummary(w io.Writer, summary *domain.RunSummary, reportPath string) {
	fmt.Fprintf(w, "Run %s finished in %s\n",
		summary.RunID, summary.FinishedAt.Sub(summary.StartedAt).Round(timeRounding))
	for _, ds := range summary.Datasets {
		fmt.Fprintf(w, "  %-12s %d files, %d rows in, %d rows out (%d duplicates, %d skipped)\n",
			ds.Dataset.DisplayName(), ds.FilesFound, ds.RowsLoaded,
			ds.FinalRows, ds.DuplicatesRemoved, ds.TotalSkipped())
	}
	fmt.Fprintf(w, "Total cleaned rows: %d\n", summary.TotalFinalRows())
	fmt.Fprintf(w, "Cleaning report: %s\n", reportPath)
}
