// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package table

import (
	"fmt"
	"time"
)

// Codec converts between typed records and frames.
type Codec[T any] struct {
	Columns []Column
	Encode  func(T) []any
	Decode  func(Row) (T, error)
}

// ToFrame encodes items in order.
func (c Codec[T]) ToFrame(items []T) (*Frame, error) {
	f := &Frame{Columns: c.Columns, Rows: make([][]any, 0, len(items))}
	for i, item := range items {
		if err := f.Append(c.Encode(item)...); err != nil {
			return nil, fmt.Errorf("encode row %d: %w", i, err)
		}
	}
	return f, nil
}

// FromFrame decodes every row. The frame must contain each codec column
// with the same kind; extra columns and column order are ignored.
func (c Codec[T]) FromFrame(f *Frame) ([]T, error) {
	index := make(map[string]int, len(c.Columns))
	for _, col := range c.Columns {
		i := f.ColumnIndex(col.Name)
		if i < 0 {
			return nil, fmt.Errorf("missing column %s", col.Name)
		}
		if f.Columns[i].Kind != col.Kind {
			return nil, fmt.Errorf("column %s is %s, want %s", col.Name, f.Columns[i].Kind, col.Kind)
		}
		index[col.Name] = i
	}

	out := make([]T, 0, len(f.Rows))
	for i, values := range f.Rows {
		item, err := c.Decode(Row{index: index, values: values})
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// Row gives a decoder typed access to one frame row by column name.
// Accessors return the zero value for unknown names or mismatched cells.
type Row struct {
	index  map[string]int
	values []any
}

func (r Row) cell(name string) any {
	i, ok := r.index[name]
	if !ok || i >= len(r.values) {
		return nil
	}
	return r.values[i]
}

func (r Row) String(name string) string {
	s, _ := r.cell(name).(string)
	return s
}

func (r Row) Int(name string) int64 {
	n, _ := r.cell(name).(int64)
	return n
}

func (r Row) Float(name string) float64 {
	f, _ := r.cell(name).(float64)
	return f
}

func (r Row) Bool(name string) bool {
	b, _ := r.cell(name).(bool)
	return b
}

func (r Row) Time(name string) time.Time {
	t, _ := r.cell(name).(time.Time)
	return t
}
