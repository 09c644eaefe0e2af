// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns the documented defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Ingest.ChunkSize != 50_000 {
		t.Errorf("Ingest.ChunkSize = %d, want 50000", cfg.Ingest.ChunkSize)
	}
	if cfg.Ingest.LogEvery != 5 {
		t.Errorf("Ingest.LogEvery = %d, want 5", cfg.Ingest.LogEvery)
	}
	wantDevices := []string{"Android", "iPhone", "Generic_Android", "Samsung"}
	if !reflect.DeepEqual(cfg.Ingest.ValidDevices, wantDevices) {
		t.Errorf("Ingest.ValidDevices = %v, want %v", cfg.Ingest.ValidDevices, wantDevices)
	}
	wantBots := []string{"bot", "axios", "spider", "crawler"}
	if !reflect.DeepEqual(cfg.Ingest.BotKeywords, wantBots) {
		t.Errorf("Ingest.BotKeywords = %v, want %v", cfg.Ingest.BotKeywords, wantBots)
	}
	if !cfg.Output.ReuseCache {
		t.Error("Output.ReuseCache should be true by default")
	}
	wantBackends := []string{"duckdb_parquet", "arrow_parquet", "csv_gzip"}
	if !reflect.DeepEqual(cfg.Output.Backends, wantBackends) {
		t.Errorf("Output.Backends = %v, want %v", cfg.Output.Backends, wantBackends)
	}
	if cfg.Analytics.Window != 4*time.Hour {
		t.Errorf("Analytics.Window = %v, want 4h", cfg.Analytics.Window)
	}
	if cfg.Analytics.Workers != 1 {
		t.Errorf("Analytics.Workers = %d, want 1", cfg.Analytics.Workers)
	}
	if cfg.Report.PortStart != 8050 {
		t.Errorf("Report.PortStart = %d, want 8050", cfg.Report.PortStart)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("ingest:\n  chunk_size: 10\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, customPath)

		if got := findConfigFile(); got != customPath {
			t.Errorf("findConfigFile() = %q, want %q", got, customPath)
		}
	})

	t.Run("CONFIG_PATH with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(tmpDir, "missing.yaml"))

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestLoadEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("CLICKS_PATH", "/data/clicks.csv.gz")
	t.Setenv("CHUNK_SIZE", "1000")
	t.Setenv("INGEST_READER", "duckdb")
	t.Setenv("VALID_DEVICES", "Android, iPhone")
	t.Setenv("PERSIST_BACKENDS", "csv_gzip")
	t.Setenv("REUSE_CACHE", "false")
	t.Setenv("ACTIVITY_WINDOW", "2h")
	t.Setenv("DASHBOARD_PORT", "9000")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sources.ClicksPath != "/data/clicks.csv.gz" {
		t.Errorf("Sources.ClicksPath = %q", cfg.Sources.ClicksPath)
	}
	if cfg.Ingest.ChunkSize != 1000 {
		t.Errorf("Ingest.ChunkSize = %d, want 1000", cfg.Ingest.ChunkSize)
	}
	if cfg.Ingest.Reader != "duckdb" {
		t.Errorf("Ingest.Reader = %q, want duckdb", cfg.Ingest.Reader)
	}
	if !reflect.DeepEqual(cfg.Ingest.ValidDevices, []string{"Android", "iPhone"}) {
		t.Errorf("Ingest.ValidDevices = %v", cfg.Ingest.ValidDevices)
	}
	if !reflect.DeepEqual(cfg.Output.Backends, []string{"csv_gzip"}) {
		t.Errorf("Output.Backends = %v", cfg.Output.Backends)
	}
	if cfg.Output.ReuseCache {
		t.Error("Output.ReuseCache should be false")
	}
	if cfg.Analytics.Window != 2*time.Hour {
		t.Errorf("Analytics.Window = %v, want 2h", cfg.Analytics.Window)
	}
	if cfg.Report.PortStart != 9000 {
		t.Errorf("Report.PortStart = %d, want 9000", cfg.Report.PortStart)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sources:
  clicks_path: /srv/clicks.csv
ingest:
  chunk_size: 2500
  log_every: 2
output:
  dir: /srv/cache
  backends:
    - arrow_parquet
    - csv_gzip
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sources.ClicksPath != "/srv/clicks.csv" {
		t.Errorf("Sources.ClicksPath = %q", cfg.Sources.ClicksPath)
	}
	if cfg.Sources.CampaignsPath != "data/campaign.csv" {
		t.Errorf("Sources.CampaignsPath should keep default, got %q", cfg.Sources.CampaignsPath)
	}
	if cfg.Ingest.ChunkSize != 2500 || cfg.Ingest.LogEvery != 2 {
		t.Errorf("Ingest = %+v", cfg.Ingest)
	}
	if !reflect.DeepEqual(cfg.Output.Backends, []string{"arrow_parquet", "csv_gzip"}) {
		t.Errorf("Output.Backends = %v", cfg.Output.Backends)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ingest:\n  chunk_size: 2500\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("CHUNK_SIZE", "777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Ingest.ChunkSize != 777 {
		t.Errorf("Ingest.ChunkSize = %d, want 777", cfg.Ingest.ChunkSize)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{
			name:   "zero chunk size",
			env:    map[string]string{"CHUNK_SIZE": "0"},
			errMsg: "Ingest.ChunkSize",
		},
		{
			name:   "unknown reader",
			env:    map[string]string{"INGEST_READER": "excel"},
			errMsg: "Ingest.Reader",
		},
		{
			name:   "unknown backend",
			env:    map[string]string{"PERSIST_BACKENDS": "duckdb_parquet,orc"},
			errMsg: "Output.Backends",
		},
		{
			name:   "duplicate backend",
			env:    map[string]string{"PERSIST_BACKENDS": "csv_gzip,csv_gzip"},
			errMsg: "more than once",
		},
		{
			name:   "port range overflow",
			env:    map[string]string{"DASHBOARD_PORT": "65530", "DASHBOARD_PORT_ATTEMPTS": "10"},
			errMsg: "exceeds 65535",
		},
		{
			name:   "invalid log format",
			env:    map[string]string{"LOG_FORMAT": "xml"},
			errMsg: "Logging.Format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() expected error containing %q, got nil", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"CHUNK_SIZE":     "ingest.chunk_size",
		"OUTPUT_DIR":     "output.dir",
		"DASHBOARD_PORT": "report.port_start",
		"LOG_LEVEL":      "logging.level",
		"HOME":           "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
