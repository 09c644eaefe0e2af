// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package ingest

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/tomtom215/clickscope/internal/database"
)

// Reader kinds accepted by OpenReader.
const (
	ReaderCSV    = "csv"
	ReaderDuckDB = "duckdb"
)

// ChunkReader yields raw rows in bounded chunks.
type ChunkReader interface {
	// Header returns the source column names.
	Header() []string

	// ReadChunk returns at most n rows. After the last row it returns
	// (nil, io.EOF).
	ReadChunk(ctx context.Context, n int) ([][]string, error)

	Close() error
}

// OpenReader opens path with the reader selected by kind. db is required
// for ReaderDuckDB and ignored otherwise.
func OpenReader(ctx context.Context, kind, path string, db *database.DB) (ChunkReader, error) {
	switch kind {
	case ReaderCSV, "":
		return NewCSVReader(path)
	case ReaderDuckDB:
		if db == nil {
			return nil, fmt.Errorf("duckdb reader requires a database engine")
		}
		return NewDuckDBReader(ctx, db, path)
	}
	return nil, fmt.Errorf("unknown reader kind %q", kind)
}

func statSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, path)
	}
	return nil
}

// CSVReader reads a comma-delimited file with a header row. Paths ending in
// .gz are decompressed on the fly.
type CSVReader struct {
	file   *os.File
	gz     *gzip.Reader
	r      *csv.Reader
	header []string
	done   bool
}

// NewCSVReader opens path and reads its header.
func NewCSVReader(path string) (*CSVReader, error) {
	if err := statSource(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	cr := &CSVReader{file: f}
	var src io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%w: open gzip %s: %w", ErrSourceUnavailable, path, err)
		}
		cr.gz = gz
		src = gz
	}

	cr.r = csv.NewReader(src)
	cr.r.LazyQuotes = true

	header, err := cr.r.Read()
	if err != nil {
		_ = cr.Close()
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Source: path, Missing: []string{"<header>"}}
		}
		return nil, fmt.Errorf("%w: read header %s: %w", ErrSourceUnavailable, path, err)
	}
	cr.header = header
	return cr, nil
}

func (c *CSVReader) Header() []string {
	return c.header
}

func (c *CSVReader) ReadChunk(ctx context.Context, n int) ([][]string, error) {
	if c.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, n)
	for len(rows) < n {
		rec, err := c.r.Read()
		if errors.Is(err, io.EOF) {
			c.done = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}

	if len(rows) == 0 {
		return nil, io.EOF
	}
	return rows, nil
}

func (c *CSVReader) Close() error {
	var errs []error
	if c.gz != nil {
		errs = append(errs, c.gz.Close())
	}
	if c.file != nil {
		errs = append(errs, c.file.Close())
	}
	return errors.Join(errs...)
}

// DuckDBReader streams rows through DuckDB's read_csv with every column as
// text. Compression is detected by DuckDB from the file name.
type DuckDBReader struct {
	rows   *sql.Rows
	header []string
	done   bool
}

// NewDuckDBReader starts streaming path through db.
func NewDuckDBReader(ctx context.Context, db *database.DB, path string) (*DuckDBReader, error) {
	if err := statSource(path); err != nil {
		return nil, err
	}

	rows, err := db.QueryCSV(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	header, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("read columns: %w", err)
	}
	return &DuckDBReader{rows: rows, header: header}, nil
}

func (d *DuckDBReader) Header() []string {
	return d.header
}

func (d *DuckDBReader) ReadChunk(ctx context.Context, n int) ([][]string, error) {
	if d.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([][]string, 0, n)
	cells := make([]sql.NullString, len(d.header))
	ptrs := make([]any, len(cells))
	for i := range cells {
		ptrs[i] = &cells[i]
	}

	for len(out) < n {
		if !d.rows.Next() {
			d.done = true
			if err := d.rows.Err(); err != nil {
				return nil, fmt.Errorf("read csv via duckdb: %w", err)
			}
			break
		}
		if err := d.rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.String // NULL -> ""
		}
		out = append(out, row)
	}

	if len(out) == 0 {
		return nil, io.EOF
	}
	return out, nil
}

func (d *DuckDBReader) Close() error {
	return d.rows.Close()
}
