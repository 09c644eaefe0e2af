// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/clickscope/internal/database"
	"github.com/tomtom215/clickscope/internal/table"
)

// Backend names as used in configuration.
const (
	BackendDuckDBParquet = "duckdb_parquet"
	BackendArrowParquet  = "arrow_parquet"
	BackendCSVGzip       = "csv_gzip"
)

// Backend writes and reads one on-disk artifact format.
type Backend interface {
	Name() string

	// Ext is the file extension including the leading dot.
	Ext() string

	Write(ctx context.Context, path string, f *table.Frame) error
	Read(ctx context.Context, path string) (*table.Frame, error)
}

// BackendsFor builds backends in the configured order. db may be nil when
// duckdb_parquet is not configured.
func BackendsFor(names []string, db *database.DB, compression string) ([]Backend, error) {
	if len(names) == 0 {
		return nil, errors.New("no persistence backends configured")
	}
	out := make([]Backend, 0, len(names))
	for _, name := range names {
		switch name {
		case BackendDuckDBParquet:
			if db == nil {
				return nil, fmt.Errorf("%s requires a database engine", name)
			}
			out = append(out, NewDuckDBParquetBackend(db))
		case BackendArrowParquet:
			b, err := NewArrowParquetBackend(compression)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		case BackendCSVGzip:
			out = append(out, NewCSVGzipBackend())
		default:
			return nil, fmt.Errorf("unknown persistence backend %q", name)
		}
	}
	return out, nil
}

// DuckDBParquetBackend exports frames through DuckDB's COPY ... TO PARQUET.
type DuckDBParquetBackend struct {
	db *database.DB
}

func NewDuckDBParquetBackend(db *database.DB) *DuckDBParquetBackend {
	return &DuckDBParquetBackend{db: db}
}

func (b *DuckDBParquetBackend) Name() string { return BackendDuckDBParquet }

func (b *DuckDBParquetBackend) Ext() string { return ".parquet" }

func (b *DuckDBParquetBackend) Write(ctx context.Context, path string, f *table.Frame) error {
	return b.db.WriteParquet(ctx, path, f)
}

func (b *DuckDBParquetBackend) Read(ctx context.Context, path string) (*table.Frame, error) {
	return b.db.ReadParquet(ctx, path)
}
