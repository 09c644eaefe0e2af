// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/clickscope/config.yaml",
	"/etc/clickscope/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			ClicksPath:    "data/clicks.csv",
			CampaignsPath: "data/campaign.csv",
			RegionsPath:   "data/regions.csv",
		},
		Ingest: IngestConfig{
			ChunkSize:    50_000,
			LogEvery:     5,
			Reader:       "csv",
			BotKeywords:  []string{"bot", "axios", "spider", "crawler"},
			ValidDevices: []string{"Android", "iPhone", "Generic_Android", "Samsung"},
		},
		Output: OutputConfig{
			Dir:          "processed_data",
			ReportsDir:   "reports",
			ReuseCache:   true,
			Backends:     []string{"duckdb_parquet", "arrow_parquet", "csv_gzip"},
			Compression:  "zstd",
			ManifestPath: "",
		},
		Analytics: AnalyticsConfig{
			Workers:          1,
			TopN:             10,
			Window:           4 * time.Hour,
			LocalOffsetHours: 3, // MSK
		},
		Report: ReportConfig{
			XLSX:            true,
			Dashboard:       true,
			Host:            "127.0.0.1",
			PortStart:       8050,
			PortAttempts:    100,
			OpenBrowser:     false,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   600,
			CORSOrigins:     []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they arrive as strings.
var sliceConfigPaths = []string{
	"ingest.bot_keywords",
	"ingest.valid_devices",
	"output.backends",
	"report.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so the process environment cannot pollute config.
var envMappings = map[string]string{
	"clicks_path":    "sources.clicks_path",
	"campaigns_path": "sources.campaigns_path",
	"regions_path":   "sources.regions_path",

	"chunk_size":    "ingest.chunk_size",
	"log_every":     "ingest.log_every",
	"ingest_reader": "ingest.reader",
	"bot_keywords":  "ingest.bot_keywords",
	"valid_devices": "ingest.valid_devices",

	"output_dir":          "output.dir",
	"reports_dir":         "output.reports_dir",
	"reuse_cache":         "output.reuse_cache",
	"persist_backends":    "output.backends",
	"parquet_compression": "output.compression",
	"manifest_path":       "output.manifest_path",

	"analytics_workers":  "analytics.workers",
	"top_n":              "analytics.top_n",
	"activity_window":    "analytics.window",
	"local_offset_hours": "analytics.local_offset_hours",

	"report_xlsx":             "report.xlsx",
	"dashboard_enabled":       "report.dashboard",
	"dashboard_host":          "report.host",
	"dashboard_port":          "report.port_start",
	"dashboard_port_attempts": "report.port_attempts",
	"open_browser":            "report.open_browser",
	"shutdown_timeout":        "report.shutdown_timeout",
	"rate_limit_requests":     "report.rate_limit_reqs",
	"cors_origins":            "report.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
//   - CHUNK_SIZE -> ingest.chunk_size
//   - OUTPUT_DIR -> output.dir
//   - DASHBOARD_PORT -> report.port_start
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
