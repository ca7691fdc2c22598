package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// PipelineConfig controls cleaning behavior
type PipelineConfig struct {
	// Datasets to process; empty means all three.
	Datasets []string `yaml:"datasets" envconfig:"DATASETS"`

	// DateFormats is the ordered list of accepted input date layouts.
	DateFormats []string `yaml:"date_formats" envconfig:"DATE_FORMATS"`

	// PassThroughUnknown keeps rows whose state cannot be resolved,
	// writing the INVALID sentinel instead of rejecting the row.
	PassThroughUnknown bool `yaml:"pass_through_unknown" envconfig:"PASS_THROUGH_UNKNOWN" default:"false"`

	// PassThroughInvalid keeps rows that fail record validation instead
	// of rejecting them.
	PassThroughInvalid bool `yaml:"pass_through_invalid" envconfig:"PASS_THROUGH_INVALID" default:"false"`

	// WindowFrom/WindowTo bound the covered reporting window (YYYY-MM-DD).
	// Empty disables the window check.
	WindowFrom string `yaml:"window_from" envconfig:"WINDOW_FROM"`
	WindowTo   string `yaml:"window_to" envconfig:"WINDOW_TO"`

	// MaxRowsPerFile caps rows per output part file.
	MaxRowsPerFile int `yaml:"max_rows_per_file" envconfig:"MAX_ROWS_PER_FILE" validate:"gt=1"`

	// ErrorSampleSize bounds how many skipped rows are kept verbatim for
	// the cleaning report.
	ErrorSampleSize int `yaml:"error_sample_size" envconfig:"ERROR_SAMPLE_SIZE" default:"20" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	InputDir      string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"data/raw"`
	CleanedDir    string `yaml:"cleaned_dir" envconfig:"CLEANED_DIR" default:"data/cleaned"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom loads configuration using the given YAML file path. The file is
// optional; environment variables always win over file values.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if len(envConfig.Pipeline.Datasets) == 0 {
		envConfig.Pipeline.Datasets = fileConfig.Pipeline.Datasets
	}
	if len(envConfig.Pipeline.DateFormats) == 0 {
		envConfig.Pipeline.DateFormats = fileConfig.Pipeline.DateFormats
	}
	if envConfig.Pipeline.WindowFrom == "" {
		envConfig.Pipeline.WindowFrom = fileConfig.Pipeline.WindowFrom
	}
	if envConfig.Pipeline.WindowTo == "" {
		envConfig.Pipeline.WindowTo = fileConfig.Pipeline.WindowTo
	}
	if envConfig.Pipeline.MaxRowsPerFile == 0 {
		envConfig.Pipeline.MaxRowsPerFile = fileConfig.Pipeline.MaxRowsPerFile
	}
	if fileConfig.Pipeline.PassThroughUnknown {
		envConfig.Pipeline.PassThroughUnknown = true
	}
	if fileConfig.Pipeline.PassThroughInvalid {
		envConfig.Pipeline.PassThroughInvalid = true
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Paths.InputDir == "" {
		envConfig.Paths.InputDir = fileConfig.Paths.InputDir
	}
	if envConfig.Paths.CleanedDir == "" {
		envConfig.Paths.CleanedDir = fileConfig.Paths.CleanedDir
	}

	return envConfig
}

// applyDefaults fills fields envconfig cannot default (slices, limits).
func (c *Config) applyDefaults() {
	if len(c.Pipeline.DateFormats) == 0 {
		c.Pipeline.DateFormats = append([]string(nil), DefaultDateFormats...)
	}
	if c.Pipeline.MaxRowsPerFile == 0 {
		// Reserve one row for the header.
		c.Pipeline.MaxRowsPerFile = ExcelMaxRows - 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	for _, layout := range c.Pipeline.DateFormats {
		if layout == "" {
			return fmt.Errorf("empty date format in pipeline.date_formats")
		}
	}

	from, to, err := c.Pipeline.Window()
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return fmt.Errorf("pipeline window_to %s is before window_from %s",
			c.Pipeline.WindowTo, c.Pipeline.WindowFrom)
	}

	return nil
}

// Window parses the configured reporting window bounds. A zero time means the
// corresponding bound is unset.
func (p PipelineConfig) Window() (from, to time.Time, err error) {
	if p.WindowFrom != "" {
		from, err = time.Parse("2006-01-02", p.WindowFrom)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid window_from %q: %w", p.WindowFrom, err)
		}
	}
	if p.WindowTo != "" {
		to, err = time.Parse("2006-01-02", p.WindowTo)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid window_to %q: %w", p.WindowTo, err)
		}
	}
	return from, to, nil
}

// getConfigFilePath returns the YAML config location next to the executable.
func getConfigFilePath() string {
	paths, err := GetPaths()
	if err != nil {
		return ConfigFile
	}
	return paths.ConfigFile
}
