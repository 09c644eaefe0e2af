// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package persist

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/tomtom215/clickscope/internal/table"
)

// CSVGzipBackend is the text fallback: a gzip-compressed CSV whose header
// cells are "name:kind", so a read restores the exact frame schema.
type CSVGzipBackend struct{}

func NewCSVGzipBackend() *CSVGzipBackend {
	return &CSVGzipBackend{}
}

func (b *CSVGzipBackend) Name() string { return BackendCSVGzip }

func (b *CSVGzipBackend) Ext() string { return ".csv.gz" }

func (b *CSVGzipBackend) Write(ctx context.Context, path string, f *table.Frame) (err error) {
	if len(f.Columns) == 0 {
		return errors.New("frame has no columns")
	}

	out, err := os.Create(path) //nolint:gosec // artifact path built from configured output dir
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	gz := gzip.NewWriter(out)
	w := csv.NewWriter(gz)

	header := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		header[i] = c.Name + ":" + c.Kind.String()
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(f.Columns))
	for n, row := range f.Rows {
		if n%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for i, v := range row {
			rec[i] = formatCell(v)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", n, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprint(v)
}

func (b *CSVGzipBackend) Read(ctx context.Context, path string) (*table.Frame, error) {
	in, err := os.Open(path) //nolint:gosec // artifact path built from configured output dir
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("open gzip %s: %w", path, err)
	}
	defer gz.Close()

	r := csv.NewReader(gz)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([]table.Column, len(header))
	for i, h := range header {
		name, kindName, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("header cell %q has no kind", h)
		}
		kind, err := table.ParseKind(kindName)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		cols[i] = table.Column{Name: name, Kind: kind}
	}

	f := table.NewFrame(cols...)
	for n := 0; ; n++ {
		if n%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", n, err)
		}
		row := make([]any, len(cols))
		for i, c := range cols {
			v, err := parseCell(c.Kind, rec[i])
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", n, c.Name, err)
			}
			row[i] = v
		}
		f.Rows = append(f.Rows, row)
	}
	return f, nil
}

func parseCell(kind table.Kind, s string) (any, error) {
	switch kind {
	case table.KindString:
		return s, nil
	case table.KindInt:
		return strconv.ParseInt(s, 10, 64)
	case table.KindFloat:
		return strconv.ParseFloat(s, 64)
	case table.KindBool:
		return strconv.ParseBool(s)
	case table.KindTime:
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		return t.UTC(), nil
	}
	return nil, fmt.Errorf("unsupported kind %s", kind)
}

func zeroCell(kind table.Kind) any {
	switch kind {
	case table.KindInt:
		return int64(0)
	case table.KindFloat:
		return float64(0)
	case table.KindBool:
		return false
	case table.KindTime:
		return time.Time{}
	default:
		return ""
	}
}
