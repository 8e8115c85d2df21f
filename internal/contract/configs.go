package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/cran/SNPfiltR/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	MaxPrecision     = 4
	DefaultPlotDir   = "snpfiltr_plots"
	DefaultRunsLimit = 25
	MaxRunsLimit     = 1000
)

// Config holds the validated runtime configuration for one invocation.
type Config struct {
	VCFPath string

	// Cutoff is only meaningful when CutoffSet is true.
	Cutoff    float64
	CutoffSet bool

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)

	PlotDir    string
	PlotFormat schema.PlotFormat
	NoPlots    bool

	// FilteredOut is the optional path for the filtered VCF.
	FilteredOut string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	RunsLimit int

	UseEmojis bool
	UseColors bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	VCFPathStr string

	// CutoffStr stays a string until validation so non-numeric input is
	// representable and maps to InvalidCutoffError.
	CutoffStr string `mapstructure:"cutoff"`

	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	PlotDir        string `mapstructure:"plot-dir"`
	PlotFormat     string `mapstructure:"plot-format"`
	NoPlots        bool   `mapstructure:"no-plots"`
	FilteredOut    string `mapstructure:"filtered-out"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	RunsLimit      int    `mapstructure:"limit"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCutoff(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	cfg.VCFPath = input.VCFPathStr
	return nil
}

// validateSimpleInputs processes and validates all non-cutoff fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.FilteredOut = input.FilteredOut
	cfg.Width = input.Width
	cfg.NoPlots = input.NoPlots

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Precision Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	// --- Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- Plot Validation ---
	cfg.PlotDir = input.PlotDir
	if cfg.PlotDir == "" {
		cfg.PlotDir = DefaultPlotDir
	}
	cfg.PlotFormat = schema.PlotFormat(strings.ToLower(input.PlotFormat))
	if _, ok := schema.ValidPlotFormats[cfg.PlotFormat]; !ok {
		return fmt.Errorf("invalid plot format '%s'. must be png, svg, pdf", input.PlotFormat)
	}

	// --- Runs Limit Validation ---
	if input.RunsLimit <= 0 || input.RunsLimit > MaxRunsLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxRunsLimit, input.RunsLimit)
	}
	cfg.RunsLimit = input.RunsLimit

	return nil
}

// processCutoff validates the completeness cutoff when one was provided.
// The filter command requires a cutoff; explore forbids one.
func processCutoff(cfg *Config, input *ConfigRawInput) error {
	if input.CutoffStr == "" {
		cfg.CutoffSet = false
		return nil
	}
	cutoff, err := schema.ParseCutoff(input.CutoffStr)
	if err != nil {
		return err
	}
	cfg.Cutoff = cutoff
	cfg.CutoffSet = true
	return nil
}

// validateBackendConfig validates the run-store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for the MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// RequireVCFPath confirms the positional VCF argument points at a readable
// file. Commands that take a VCF call this after ProcessAndValidate.
func RequireVCFPath(cfg *Config) error {
	if cfg.VCFPath == "" {
		return fmt.Errorf("a VCF path is required")
	}
	info, err := os.Stat(cfg.VCFPath)
	if err != nil {
		return fmt.Errorf("cannot read VCF at %q: %w", cfg.VCFPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%q is a directory, expected a VCF file", cfg.VCFPath)
	}
	return nil
}
