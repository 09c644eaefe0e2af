// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package persist writes tables to on-disk artifacts and serves them back
// as a path-based cache.
//
// Backends are tried in configured order:
//
//	duckdb_parquet  COPY ... TO (FORMAT PARQUET) through the DuckDB engine
//	arrow_parquet   pqarrow file writer, no database engine required
//	csv_gzip        gzip CSV with "name:kind" header cells
//
// Every failed attempt is logged with its backend and counted in
// clickscope_persist_attempts_total. When every backend fails the error
// wraps ErrAllBackendsFailed and joins each attempt's error.
//
// Cached is the only form of incremental computation: when reuse is enabled
// and an artifact exists under the name, it is decoded and returned without
// calling compute. There is no content hash or staleness check.
//
// The Manifest records which backend produced each artifact and whether the
// last access was a cache hit. BadgerManifest keeps it across runs.
package persist
