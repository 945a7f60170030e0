// Package config loads the sheetcharts TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
)

// Config is the application configuration.
type Config struct {
	Source  SourceConfig  `toml:"source"`
	Chart   ChartConfig   `toml:"chart"`
	Remote  RemoteConfig  `toml:"remote"`
	Output  OutputConfig  `toml:"output"`
	Metrics MetricsConfig `toml:"metrics"`
}

// SourceConfig locates the data grid.
type SourceConfig struct {
	// Path is a local .xlsx, .xls or .csv file. Empty reads the remote spreadsheet.
	Path         string `toml:"path"`
	Sheet        string `toml:"sheet"`
	DateColumn   string `toml:"date_column"`
	MetricColumn string `toml:"metric_column"`
}

// ChartConfig describes the charts to keep in sync.
type ChartConfig struct {
	Title       string  `toml:"title"`
	Kind        string  `toml:"kind"`
	Style       string  `toml:"style"`
	Mode        string  `toml:"mode"`
	TargetSheet string  `toml:"target_sheet"`
	AnchorRow   int     `toml:"anchor_row"`
	AnchorCol   string  `toml:"anchor_column"`
	Padding     float64 `toml:"padding"`
	XAxisTitle  string  `toml:"x_axis_title"`
	YAxisTitle  string  `toml:"y_axis_title"`
	Legend      string  `toml:"legend"`
}

// RemoteConfig selects the Google Sheets backend.
type RemoteConfig struct {
	SpreadsheetID string `toml:"spreadsheet_id"`
	Credentials   string `toml:"credentials"`
	TokenCache    string `toml:"token_cache"`
}

// OutputConfig selects the file backend.
type OutputConfig struct {
	InventoryPath string `toml:"inventory_path"`
	BatchPath     string `toml:"batch_path"`
	Pretty        bool   `toml:"pretty"`
}

// MetricsConfig controls the run metrics export.
type MetricsConfig struct {
	Namespace string `toml:"namespace"`
	Textfile  string `toml:"textfile"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Sheet:        "Sheet1",
			DateColumn:   "A",
			MetricColumn: "D",
		},
		Chart: ChartConfig{
			Title:       "Weight over Time",
			Kind:        "LINE",
			Mode:        "whole",
			TargetSheet: "graphs",
			AnchorCol:   "A",
			Padding:     parser.DefaultPadding,
		},
		Remote: RemoteConfig{
			TokenCache: ".sheetcharts-token.json",
		},
		Metrics: MetricsConfig{
			Namespace: "sheetcharts",
		},
	}
}

// Load reads the TOML file at path over the defaults and applies the
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GOOGLE_SHEET_FILE"); v != "" {
		cfg.Remote.SpreadsheetID = v
	}
	if v := os.Getenv("GRAPHS_SHEET_NAME"); v != "" {
		cfg.Chart.TargetSheet = v
	}
	if v := os.Getenv("SHEETCHARTS_CREDENTIALS"); v != "" {
		cfg.Remote.Credentials = v
	}
}

// Save writes cfg to path.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks column letters, mode and padding.
func (c *Config) Validate() error {
	if _, err := parser.ParseColumn(c.Source.DateColumn); err != nil {
		return fmt.Errorf("source.date_column: %w", err)
	}
	if _, err := parser.ParseColumn(c.Source.MetricColumn); err != nil {
		return fmt.Errorf("source.metric_column: %w", err)
	}
	if _, err := parser.ParseColumn(c.Chart.AnchorCol); err != nil {
		return fmt.Errorf("chart.anchor_column: %w", err)
	}
	if c.Chart.Mode != "whole" && c.Chart.Mode != "weekly" {
		return fmt.Errorf("chart.mode: invalid mode %q (must be whole or weekly)", c.Chart.Mode)
	}
	if c.Chart.Padding < 0 {
		return fmt.Errorf("chart.padding: must not be negative")
	}
	if c.Chart.AnchorRow < 0 {
		return fmt.Errorf("chart.anchor_row: must not be negative")
	}
	return nil
}
