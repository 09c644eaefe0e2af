// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package main is the entry point for the Clickscope batch pipeline.
//
// One invocation ingests the raw click, campaign and region tables, joins
// clicks to campaigns, computes every aggregate, writes the static reports and
// then optionally serves the dashboard until interrupted.
//
// # Startup Order
//
//  1. Configuration: defaults, config.yaml, then environment variables (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. DuckDB: opened only for the duckdb reader or the duckdb_parquet backend
//  4. Persister: backend chain plus the BadgerDB (or in-memory) manifest
//  5. Pipeline: ingest_clicks, ingest_campaigns, ingest_regions, aggregate, report
//  6. Dashboard: chi router under a suture supervisor tree
//
// # Configuration
//
// Every key can be set from the environment, for example:
//
//	export CLICKS_PATH=data/clicks.csv
//	export PERSIST_BACKENDS=arrow_parquet,csv_gzip
//	export DASHBOARD_ENABLED=false
//	./clickscope
//
// # Exit Status
//
// A failed step exits non-zero after logging the step name. With the dashboard
// disabled the process exits once the reports are written. Otherwise it stays
// up until SIGINT or SIGTERM and shuts the HTTP server down gracefully.
package main
