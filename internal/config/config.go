// Package config handles configuration loading for sentigauge.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mvello/sentigauge/pkg/models"
)

// Config represents the complete application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"    yaml:"data"`
	Gauge   GaugeConfig   `mapstructure:"gauge"   yaml:"gauge"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// DataConfig holds the sentiment tallies driving the gauge.
type DataConfig struct {
	Positive int `mapstructure:"positive" yaml:"positive"`
	Negative int `mapstructure:"negative" yaml:"negative"`
	Neutral  int `mapstructure:"neutral"  yaml:"neutral"`
}

// Counts converts the data section to the model type.
func (d DataConfig) Counts() models.SentimentCounts {
	return models.SentimentCounts{
		Positive: d.Positive,
		Negative: d.Negative,
		Neutral:  d.Neutral,
	}
}

// GaugeConfig holds the KPI parameters and visual options.
type GaugeConfig struct {
	Target        float64      `mapstructure:"target"         yaml:"target"`         // goal percentage, 0-100
	Title         string       `mapstructure:"title"          yaml:"title"`
	ShowBreakdown bool         `mapstructure:"show_breakdown" yaml:"show_breakdown"`
	Colors        ColorsConfig `mapstructure:"colors"         yaml:"colors"`
}

// ColorsConfig holds the tier color overrides. Empty fields fall back
// to the builder's built-in scheme.
type ColorsConfig struct {
	Low    string `mapstructure:"low"    yaml:"low"`
	Medium string `mapstructure:"medium" yaml:"medium"`
	High   string `mapstructure:"high"   yaml:"high"`
}

// Scheme converts the colors section to the model type. All-empty
// returns the zero scheme, which selects the default palette.
func (c ColorsConfig) Scheme() models.ColorScheme {
	return models.ColorScheme{Low: c.Low, Medium: c.Medium, High: c.High}
}

// OutputConfig holds the optional artifact paths. Empty paths disable
// the corresponding artifact.
type OutputConfig struct {
	HTML string `mapstructure:"html" yaml:"html"`
	JSON string `mapstructure:"json" yaml:"json"`
	SVG  string `mapstructure:"svg"  yaml:"svg"`
}

// APIConfig holds HTTP server settings for the serve command.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.sentigauge/config.yaml (home directory)
//  3. /etc/sentigauge/config.yaml (system)
//
// Environment variables override config file values.
// Format: SENTIGAUGE_<SECTION>_<KEY>, e.g. SENTIGAUGE_GAUGE_TARGET
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".sentigauge"))
	v.AddConfigPath("/etc/sentigauge")

	v.SetEnvPrefix("SENTIGAUGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("SENTIGAUGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values. The data
// defaults are the canonical sample tallies.
func setDefaults(v *viper.Viper) {
	// Sample data defaults
	v.SetDefault("data.positive", 120)
	v.SetDefault("data.negative", 30)
	v.SetDefault("data.neutral", 50)

	// Gauge defaults
	v.SetDefault("gauge.target", 70.0)
	v.SetDefault("gauge.title", "Sentiment Analysis - Social Media")
	v.SetDefault("gauge.show_breakdown", true)

	// Output defaults: no artifacts unless asked
	v.SetDefault("output.html", "")
	v.SetDefault("output.json", "")
	v.SetDefault("output.svg", "")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
