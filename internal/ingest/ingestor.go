// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/metrics"
)

const (
	DefaultChunkSize = 50000
	DefaultLogEvery  = 5
)

// Options controls chunking and progress reporting.
type Options struct {
	ChunkSize int
	LogEvery  int
}

// Ingestor reads sources in bounded chunks. It holds no per-source state and
// may be reused for several sources.
type Ingestor struct {
	chunkSize int
	logEvery  int
}

// New creates an Ingestor. Non-positive options fall back to defaults.
func New(opts Options) *Ingestor {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.LogEvery <= 0 {
		opts.LogEvery = DefaultLogEvery
	}
	return &Ingestor{chunkSize: opts.ChunkSize, logEvery: opts.LogEvery}
}

// ChunkSize returns the configured rows per chunk.
func (ing *Ingestor) ChunkSize() int {
	return ing.chunkSize
}

// Source describes how raw rows of one input become typed records.
type Source[T any] struct {
	Name   string
	Schema Schema

	// Filter, when set, runs on raw cells before coercion.
	Filter RowFilter

	Build func(Record) (T, error)

	// Finish, when set, runs once over the complete record set.
	Finish func(ctx context.Context, records []T)
}

// Result is the output of one source ingest.
type Result[T any] struct {
	Records []T
	Stats   *Stats
}

// Run drains r and returns every retained record in source order. The
// output is identical for every chunk size.
func Run[T any](ctx context.Context, ing *Ingestor, r ChunkReader, src Source[T]) (*Result[T], error) {
	stats := &Stats{Source: src.Name, StartTime: time.Now()}
	log := logging.Ctx(ctx)

	b, err := src.Schema.bind(src.Name, r.Header())
	if err != nil {
		return nil, err
	}

	var filterPos []int
	if src.Filter != nil {
		filterPos, err = headerIndex(src.Name, r.Header(), src.Filter.Columns())
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("source", src.Name).
		Int("chunk_size", ing.chunkSize).
		Msg("Starting ingest")

	c := newCoercer()
	records := make([]T, 0, ing.chunkSize)
	filterBuf := make([]string, len(filterPos))

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		chunk, err := r.ReadChunk(ctx, ing.chunkSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read chunk %d of %s: %w", stats.Chunks+1, src.Name, err)
		}

		stats.Chunks++
		retained := 0
		for i, raw := range chunk {
			row := stats.RowsSeen + int64(i) + 1

			if src.Filter != nil {
				for j, p := range filterPos {
					filterBuf[j] = cell(raw, p)
				}
				if !src.Filter.Keep(filterBuf) {
					continue
				}
			}

			rec, err := coerceRow(c, b, raw)
			if err != nil {
				err.Chunk = stats.Chunks
				err.Row = int(row)
				return nil, err
			}

			item, buildErr := src.Build(rec)
			if buildErr != nil {
				return nil, &CoercionError{Source: src.Name, Chunk: stats.Chunks, Row: int(row), Err: buildErr}
			}
			records = append(records, item)
			retained++
		}

		stats.RowsSeen += int64(len(chunk))
		stats.RowsRetained += int64(retained)
		metrics.RecordIngestChunk(src.Name, len(chunk), retained)

		if stats.Chunks%ing.logEvery == 0 {
			log.Info().
				Str("source", src.Name).
				Int("chunk", stats.Chunks).
				Int64("rows_seen", stats.RowsSeen).
				Int64("rows_retained", stats.RowsRetained).
				Float64("rows_per_sec", stats.RowsPerSecond()).
				Msg("Ingest progress")
		}
	}

	stats.EndTime = time.Now()
	metrics.RecordIngestDuration(src.Name, stats.Duration())

	log.Info().
		Str("source", src.Name).
		Int("chunks", stats.Chunks).
		Int64("rows_seen", stats.RowsSeen).
		Int64("rows_retained", stats.RowsRetained).
		Float64("retained_pct", stats.RetainedPercent()).
		Dur("duration", stats.Duration()).
		Msg("Ingest completed")

	if src.Finish != nil {
		src.Finish(ctx, records)
	}
	return &Result[T]{Records: records, Stats: stats}, nil
}

func cell(raw []string, pos int) string {
	if pos < 0 || pos >= len(raw) {
		return ""
	}
	return raw[pos]
}

func coerceRow(c *coercer, b *binding, raw []string) (Record, *CoercionError) {
	values := make([]any, len(b.schema))
	for i, col := range b.schema {
		v := cell(raw, b.pos[i])
		if b.pos[i] < 0 {
			values[i] = zeroFor(col.Type)
			continue
		}
		out, err := c.coerce(col, v)
		if err != nil {
			return Record{}, &CoercionError{Source: b.source, Column: col.Name, Value: v, Err: err}
		}
		values[i] = out
	}
	return Record{b: b, values: values}, nil
}
