// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/tomtom215/clickscope/internal/table"
)

const arrowRowGroupSize = 100000

// ArrowParquetBackend writes Parquet natively through Arrow, without a
// database engine. Times are stored as UTC microsecond timestamps.
type ArrowParquetBackend struct {
	codec compress.Compression
	mem   memory.Allocator
}

// NewArrowParquetBackend accepts zstd, snappy, gzip or uncompressed.
func NewArrowParquetBackend(compression string) (*ArrowParquetBackend, error) {
	var codec compress.Compression
	switch compression {
	case "zstd", "":
		codec = compress.Codecs.Zstd
	case "snappy":
		codec = compress.Codecs.Snappy
	case "gzip":
		codec = compress.Codecs.Gzip
	case "uncompressed":
		codec = compress.Codecs.Uncompressed
	default:
		return nil, fmt.Errorf("unsupported parquet compression %q", compression)
	}
	return &ArrowParquetBackend{codec: codec, mem: memory.NewGoAllocator()}, nil
}

func (b *ArrowParquetBackend) Name() string { return BackendArrowParquet }

func (b *ArrowParquetBackend) Ext() string { return ".parquet" }

func arrowType(k table.Kind) (arrow.DataType, error) {
	switch k {
	case table.KindString:
		return arrow.BinaryTypes.String, nil
	case table.KindInt:
		return arrow.PrimitiveTypes.Int64, nil
	case table.KindFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case table.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case table.KindTime:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}, nil
	}
	return nil, fmt.Errorf("unsupported column kind %s", k)
}

func frameKindOf(dt arrow.DataType) (table.Kind, error) {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return table.KindString, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32:
		return table.KindInt, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return table.KindFloat, nil
	case arrow.BOOL:
		return table.KindBool, nil
	case arrow.TIMESTAMP:
		return table.KindTime, nil
	}
	return 0, fmt.Errorf("unsupported arrow type %s", dt)
}

func (b *ArrowParquetBackend) Write(ctx context.Context, path string, f *table.Frame) (err error) {
	if len(f.Columns) == 0 {
		return errors.New("frame has no columns")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fields := make([]arrow.Field, len(f.Columns))
	for i, c := range f.Columns {
		dt, typErr := arrowType(c.Kind)
		if typErr != nil {
			return typErr
		}
		fields[i] = arrow.Field{Name: c.Name, Type: dt}
	}
	schema := arrow.NewSchema(fields, nil)

	rb := array.NewRecordBuilder(b.mem, schema)
	defer rb.Release()

	for _, row := range f.Rows {
		for i, v := range row {
			if appendErr := appendValue(rb.Field(i), v); appendErr != nil {
				return fmt.Errorf("column %s: %w", f.Columns[i].Name, appendErr)
			}
		}
	}

	rec := rb.NewRecord()
	defer rec.Release()

	out, err := os.Create(path) //nolint:gosec // artifact path built from configured output dir
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		// The parquet writer closes the sink on success.
		if cerr := out.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && err == nil {
			err = cerr
		}
	}()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(b.codec),
		parquet.WithMaxRowGroupLength(arrowRowGroupSize),
		parquet.WithAllocator(b.mem),
	)
	w, err := pqarrow.NewFileWriter(schema, out, props, pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema()))
	if err != nil {
		return fmt.Errorf("open parquet writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return fmt.Errorf("write record: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

func appendValue(fb array.Builder, v any) error {
	switch bld := fb.(type) {
	case *array.StringBuilder:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		bld.Append(s)
	case *array.Int64Builder:
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("expected int64, got %T", v)
		}
		bld.Append(n)
	case *array.Float64Builder:
		x, ok := v.(float64)
		if !ok {
			return fmt.Errorf("expected float64, got %T", v)
		}
		bld.Append(x)
	case *array.BooleanBuilder:
		x, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		bld.Append(x)
	case *array.TimestampBuilder:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time, got %T", v)
		}
		bld.Append(arrow.Timestamp(t.UnixMicro()))
	default:
		return fmt.Errorf("unsupported builder %T", fb)
	}
	return nil
}

func (b *ArrowParquetBackend) Read(ctx context.Context, path string) (*table.Frame, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{BatchSize: arrowRowGroupSize}, b.mem)
	if err != nil {
		return nil, fmt.Errorf("open arrow reader: %w", err)
	}

	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read parquet table: %w", err)
	}
	defer tbl.Release()

	schema := tbl.Schema()
	nrows := int(tbl.NumRows())
	f := &table.Frame{
		Columns: make([]table.Column, schema.NumFields()),
		Rows:    make([][]any, nrows),
	}
	for r := range f.Rows {
		f.Rows[r] = make([]any, schema.NumFields())
	}

	for c, field := range schema.Fields() {
		kind, err := frameKindOf(field.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", field.Name, err)
		}
		f.Columns[c] = table.Column{Name: field.Name, Kind: kind}

		r := 0
		for _, chunk := range tbl.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				f.Rows[r][c] = cellValue(chunk, i, kind)
				r++
			}
		}
	}
	return f, nil
}

// cellValue returns the normalized value at i; nulls become zero values.
func cellValue(arr arrow.Array, i int, kind table.Kind) any {
	if arr.IsNull(i) {
		return zeroCell(kind)
	}
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return int64(a.Value(i))
	case *array.Uint16:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit).UTC()
	}
	return zeroCell(kind)
}
