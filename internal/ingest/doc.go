// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package ingest reads raw delimited sources in bounded chunks, filters and
// coerces each chunk, and accumulates the result into typed records.
//
// # Flow
//
//	ChunkReader (CSVReader | DuckDBReader)
//	       ↓  [][]string, at most ChunkSize rows
//	RowFilter (clicks only, raw strings)
//	       ↓
//	Schema coercion (string, int32, int8, category, timestamp)
//	       ↓
//	Source.Build -> []T
//
// Chunk size bounds memory only. The retained records are identical for
// any chunk size because filtering and coercion are per row.
//
// # Failure
//
// A missing or unreadable source wraps ErrSourceUnavailable. A header
// lacking a required column, or any cell that cannot be coerced, wraps
// ErrCoercion and aborts the run; there is no partial-row recovery.
//
// # Progress
//
// Every LogEvery chunks a "Ingest progress" event reports cumulative rows
// seen and retained. Progress is observational and never affects control flow.
package ingest
