// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package config loads Clickscope configuration.
//
// Loading order (koanf v2):
//  1. Defaults: built-in values from defaultConfig()
//  2. Config file: optional YAML (CONFIG_PATH, ./config.yaml, /etc/clickscope/config.yaml)
//  3. Environment variables: override any setting (see envMappings)
//
// The resulting Config is passed to each component at construction; no
// package reads configuration from globals.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Sources   SourcesConfig   `koanf:"sources"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Output    OutputConfig    `koanf:"output"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Report    ReportConfig    `koanf:"report"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// SourcesConfig locates the raw delimited inputs.
type SourcesConfig struct {
	ClicksPath    string `koanf:"clicks_path" validate:"required"`
	CampaignsPath string `koanf:"campaigns_path" validate:"required"`
	RegionsPath   string `koanf:"regions_path" validate:"required"`
}

// IngestConfig controls chunked reading and the click filter.
type IngestConfig struct {
	// ChunkSize is the number of rows read per chunk. Only affects memory, never output.
	ChunkSize int `koanf:"chunk_size" validate:"min=1"`

	// LogEvery emits a progress event after every N chunks.
	LogEvery int `koanf:"log_every" validate:"min=1"`

	// Reader selects the chunk reader: csv (encoding/csv) or duckdb (read_csv).
	Reader string `koanf:"reader" validate:"oneof=csv duckdb"`

	BotKeywords  []string `koanf:"bot_keywords" validate:"dive,required"`
	ValidDevices []string `koanf:"valid_devices" validate:"min=1,dive,required"`
}

// OutputConfig controls where artifacts go and how they are persisted.
type OutputConfig struct {
	Dir        string `koanf:"dir" validate:"required"`
	ReportsDir string `koanf:"reports_dir" validate:"required"`

	// ReuseCache serves an existing artifact instead of recomputing it.
	ReuseCache bool `koanf:"reuse_cache"`

	// Backends is the ordered capability list tried by the persister.
	Backends []string `koanf:"backends" validate:"min=1,dive,oneof=duckdb_parquet arrow_parquet csv_gzip"`

	Compression string `koanf:"compression" validate:"oneof=zstd snappy gzip uncompressed"`

	// ManifestPath is the BadgerDB directory for the artifact manifest.
	// Empty keeps the manifest in memory for the lifetime of the process.
	ManifestPath string `koanf:"manifest_path"`
}

// AnalyticsConfig controls the aggregate engine.
type AnalyticsConfig struct {
	// Workers bounds aggregate fan-out. 1 computes aggregates sequentially.
	Workers int `koanf:"workers" validate:"min=1,max=64"`

	TopN int `koanf:"top_n" validate:"min=1"`

	// Window is the early-activity window measured from campaign creation.
	Window time.Duration `koanf:"window" validate:"gt=0"`

	// LocalOffsetHours converts best hours from UTC to the operator's local clock.
	LocalOffsetHours int `koanf:"local_offset_hours" validate:"min=-12,max=14"`
}

// ReportConfig controls static artifacts and the dashboard.
type ReportConfig struct {
	XLSX            bool          `koanf:"xlsx"`
	Dashboard       bool          `koanf:"dashboard"`
	Host            string        `koanf:"host" validate:"required"`
	PortStart       int           `koanf:"port_start" validate:"min=1,max=65535"`
	PortAttempts    int           `koanf:"port_attempts" validate:"min=1"`
	OpenBrowser     bool          `koanf:"open_browser"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=1"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config for file/env loading.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
