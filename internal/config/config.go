package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "EMPRESAS"

// Config represents the complete application configuration
type Config struct {
	Logging       LoggingConfig       `yaml:"logging" envconfig:"LOGGING"`
	Paths         PathsConfig         `yaml:"paths" envconfig:"PATHS"`
	Sources       SourcesConfig       `yaml:"sources" envconfig:"SOURCES"`
	Observability ObservabilityConfig `yaml:"observability" envconfig:"OBSERVABILITY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/empresas.log"`
}

// PathsConfig contains the directory convention shared by all jobs.
// Relative paths are resolved against the working directory at start time.
type PathsConfig struct {
	RawDir       string `yaml:"raw_dir" envconfig:"RAW_DIR" default:"data/raw" validate:"required"`
	ProcessedDir string `yaml:"processed_dir" envconfig:"PROCESSED_DIR" default:"data/processed" validate:"required"`
	ReportsDir   string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports" validate:"required"`
}

// SourcesConfig holds the filename prefixes that select each loader's inputs.
type SourcesConfig struct {
	CCMPrefix string `yaml:"ccm_prefix" envconfig:"CCM_PREFIX" default:"LISTAGEM CADASTRO" validate:"required"`
	RFBPrefix string `yaml:"rfb_prefix" envconfig:"RFB_PREFIX" default:"CNPJ DE MOGI" validate:"required"`
	CCMSheet  string `yaml:"ccm_sheet" envconfig:"CCM_SHEET" default:"FINAL" validate:"required"`
}

// ObservabilityConfig controls the optional trace and metrics outputs.
// Empty paths disable the corresponding exporter.
type ObservabilityConfig struct {
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Environment string `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
}

// Load loads configuration from the optional YAML file and environment
// variables. Environment values take precedence over the file.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is like Load but reads the given YAML file. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

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

// mergeConfigs merges file config with env config. A value explicitly set in
// the environment wins; otherwise a non-empty file value replaces the default.
func mergeConfigs(fileConfig, envConfig Config) Config {
	pick := func(env, key, file string) string {
		if _, ok := os.LookupEnv(EnvPrefix + "_" + key); ok || file == "" {
			return env
		}
		return file
	}

	envConfig.Logging.Level = pick(envConfig.Logging.Level, "LOGGING_LEVEL", fileConfig.Logging.Level)
	envConfig.Logging.Format = pick(envConfig.Logging.Format, "LOGGING_FORMAT", fileConfig.Logging.Format)
	envConfig.Logging.Output = pick(envConfig.Logging.Output, "LOGGING_OUTPUT", fileConfig.Logging.Output)
	envConfig.Logging.FilePath = pick(envConfig.Logging.FilePath, "LOGGING_FILE_PATH", fileConfig.Logging.FilePath)

	envConfig.Paths.RawDir = pick(envConfig.Paths.RawDir, "PATHS_RAW_DIR", fileConfig.Paths.RawDir)
	envConfig.Paths.ProcessedDir = pick(envConfig.Paths.ProcessedDir, "PATHS_PROCESSED_DIR", fileConfig.Paths.ProcessedDir)
	envConfig.Paths.ReportsDir = pick(envConfig.Paths.ReportsDir, "PATHS_REPORTS_DIR", fileConfig.Paths.ReportsDir)

	envConfig.Sources.CCMPrefix = pick(envConfig.Sources.CCMPrefix, "SOURCES_CCM_PREFIX", fileConfig.Sources.CCMPrefix)
	envConfig.Sources.RFBPrefix = pick(envConfig.Sources.RFBPrefix, "SOURCES_RFB_PREFIX", fileConfig.Sources.RFBPrefix)
	envConfig.Sources.CCMSheet = pick(envConfig.Sources.CCMSheet, "SOURCES_CCM_SHEET", fileConfig.Sources.CCMSheet)

	envConfig.Observability.TraceFile = pick(envConfig.Observability.TraceFile, "OBSERVABILITY_TRACE_FILE", fileConfig.Observability.TraceFile)
	envConfig.Observability.MetricsFile = pick(envConfig.Observability.MetricsFile, "OBSERVABILITY_METRICS_FILE", fileConfig.Observability.MetricsFile)
	envConfig.Observability.Environment = pick(envConfig.Observability.Environment, "OBSERVABILITY_ENVIRONMENT", fileConfig.Observability.Environment)

	return envConfig
}

// Validate checks the struct tags and normalizes the logging enums.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	c.Logging.Format = strings.ToLower(c.Logging.Format)

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging file path is required for output %q", c.Logging.Output)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/empresas.log",
		},
		Paths: PathsConfig{
			RawDir:       DefaultRawDir,
			ProcessedDir: DefaultProcessedDir,
			ReportsDir:   DefaultReportsDir,
		},
		Sources: SourcesConfig{
			CCMPrefix: CCMSourcePrefix,
			RFBPrefix: RFBSourcePrefix,
			CCMSheet:  CCMSheetName,
		},
		Observability: ObservabilityConfig{
			Environment: "development",
		},
	}
}
