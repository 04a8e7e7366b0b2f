package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gstbook/internal/logger"
)

// Config holds all application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Parser ParserConfig `mapstructure:"parser"`
	Export ExportConfig `mapstructure:"export"`
	Sheets SheetsConfig `mapstructure:"sheets"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
	Output     string `mapstructure:"output"`
}

// ParserConfig holds invoice parsing settings.
type ParserConfig struct {
	DefaultTaxRate string `mapstructure:"default_tax_rate"`
	CreatorMarker  string `mapstructure:"creator_marker"`
	Workers        int    `mapstructure:"workers"`
}

// ExportConfig holds output settings.
type ExportConfig struct {
	ForceInvoiceData bool   `mapstructure:"force_invoice_data"`
	Format           string `mapstructure:"format"`
}

// SheetsConfig holds Google Sheets settings. An empty URL disables the upload.
type SheetsConfig struct {
	URL             string `mapstructure:"url"`
	Worksheet       string `mapstructure:"worksheet"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			TimeFormat: "2006-01-02T15:04:05Z07:00",
			Output:     "stderr",
		},
		Parser: ParserConfig{
			DefaultTaxRate: "1.5",
			CreatorMarker:  "Vyaparapp",
			Workers:        1,
		},
		Export: ExportConfig{Format: FormatXLSX},
		Sheets: SheetsConfig{Worksheet: "Invoices"},
	}
}

// Load reads configuration from an optional config file and from environment
// variables with the GSTBOOK_ prefix, e.g. GSTBOOK_PARSER_WORKERS. An empty
// path looks for gstbook.yaml in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.time_format", d.Log.TimeFormat)
	v.SetDefault("log.output", d.Log.Output)

	v.SetDefault("parser.default_tax_rate", d.Parser.DefaultTaxRate)
	v.SetDefault("parser.creator_marker", d.Parser.CreatorMarker)
	v.SetDefault("parser.workers", d.Parser.Workers)

	v.SetDefault("export.force_invoice_data", d.Export.ForceInvoiceData)
	v.SetDefault("export.format", d.Export.Format)

	v.SetDefault("sheets.url", d.Sheets.URL)
	v.SetDefault("sheets.worksheet", d.Sheets.Worksheet)
	v.SetDefault("sheets.credentials_file", d.Sheets.CredentialsFile)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gstbook")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	rate, err := decimal.NewFromString(c.Parser.DefaultTaxRate)
	if err != nil {
		return fmt.Errorf("parser.default_tax_rate %q is not a number", c.Parser.DefaultTaxRate)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("parser.default_tax_rate must be positive")
	}
	if c.Parser.Workers < 1 {
		return fmt.Errorf("parser.workers must be at least 1")
	}
	switch c.Export.Format {
	case FormatXLSX, FormatCSV:
	default:
		return fmt.Errorf("export.format must be %s or %s, got %q", FormatXLSX, FormatCSV, c.Export.Format)
	}
	if c.Sheets.URL != "" && c.Sheets.Worksheet == "" {
		return fmt.Errorf("sheets.worksheet is required when sheets.url is set")
	}
	return nil
}

// DefaultTaxRate returns the validated parser.default_tax_rate.
func (c *Config) DefaultTaxRate() decimal.Decimal {
	return decimal.RequireFromString(c.Parser.DefaultTaxRate)
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		TimeFormat: c.Log.TimeFormat,
		Output:     c.Log.Output,
	}
}
