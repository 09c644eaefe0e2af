// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package database wraps an in-process DuckDB engine used as a columnar
// writer and reader: frames are staged into temporary tables and exported
// with COPY ... (FORMAT PARQUET), and Parquet or delimited files are read
// back through DuckDB table functions.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/clickscope/internal/logging"
)

// Options configures the embedded engine.
type Options struct {
	// Threads bounds DuckDB worker threads. 0 uses runtime.NumCPU().
	Threads int

	// MaxMemory is a DuckDB memory limit such as "2GB". Empty keeps the default.
	MaxMemory string

	// Compression is the Parquet codec: zstd, snappy, gzip or uncompressed.
	Compression string
}

// DB wraps an in-memory DuckDB database.
type DB struct {
	conn        *sql.DB
	compression string
}

// Open creates an in-memory DuckDB instance.
func Open(opts Options) (*DB, error) {
	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	// Autoload stays off: parquet and csv are built in, and a restricted
	// network must not stall the writer on an extension download.
	dsn := fmt.Sprintf(":memory:?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false", threads)
	if opts.MaxMemory != "" {
		dsn += "&max_memory=" + opts.MaxMemory
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	compression, err := parquetCodec(opts.Compression)
	if err != nil {
		closeQuietly(conn)
		return nil, err
	}

	db := &DB{conn: conn, compression: compression}
	ctx, cancel := db.ensureContext(context.Background())
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	logging.Debug().Int("threads", threads).Str("compression", compression).Msg("DuckDB engine ready")
	return db, nil
}

// Close releases the engine.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Conn returns the underlying SQL handle.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

func parquetCodec(name string) (string, error) {
	switch strings.ToLower(name) {
	case "", "zstd":
		return "ZSTD", nil
	case "snappy":
		return "SNAPPY", nil
	case "gzip":
		return "GZIP", nil
	case "uncompressed":
		return "UNCOMPRESSED", nil
	}
	return "", fmt.Errorf("unsupported parquet compression %q", name)
}

// quoteIdent quotes a SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteLiteral quotes a SQL string literal. Table functions take their path
// as a literal, not a bind parameter.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
