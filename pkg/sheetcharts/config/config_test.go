package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GOOGLE_SHEET_FILE", "")
	t.Setenv("GRAPHS_SHEET_NAME", "")
	t.Setenv("SHEETCHARTS_CREDENTIALS", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Chart.TargetSheet != "graphs" || cfg.Source.MetricColumn != "D" || cfg.Chart.Padding != 1.5 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetcharts.toml")
	data := `
[source]
path = "weight.xlsx"
metric_column = "C"

[chart]
mode = "weekly"
style = "smooth"

[remote]
spreadsheet_id = "from-file"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOOGLE_SHEET_FILE", "from-env")
	t.Setenv("GRAPHS_SHEET_NAME", "charts")
	t.Setenv("SHEETCHARTS_CREDENTIALS", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"source.path", cfg.Source.Path, "weight.xlsx"},
		{"source.metric_column", cfg.Source.MetricColumn, "C"},
		{"source.date_column", cfg.Source.DateColumn, "A"},
		{"chart.mode", cfg.Chart.Mode, "weekly"},
		{"chart.style", cfg.Chart.Style, "smooth"},
		{"chart.target_sheet", cfg.Chart.TargetSheet, "charts"},
		{"remote.spreadsheet_id", cfg.Remote.SpreadsheetID, "from-env"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s = %q, expected %q", tt.name, tt.got, tt.expected)
		}
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[chart\nmode ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad date column", func(c *Config) { c.Source.DateColumn = "1" }},
		{"bad mode", func(c *Config) { c.Chart.Mode = "monthly" }},
		{"negative padding", func(c *Config) { c.Chart.Padding = -1 }},
		{"negative anchor row", func(c *Config) { c.Chart.AnchorRow = -2 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("GOOGLE_SHEET_FILE", "")
	t.Setenv("GRAPHS_SHEET_NAME", "")
	t.Setenv("SHEETCHARTS_CREDENTIALS", "")

	path := filepath.Join(t.TempDir(), "out.toml")
	cfg := DefaultConfig()
	cfg.Chart.Title = "Body weight"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Chart.Title != "Body weight" {
		t.Errorf("Title = %q", loaded.Chart.Title)
	}
}
