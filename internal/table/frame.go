// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package table provides the typed in-memory frame exchanged between the
// ingestor, the aggregate engine and every persist backend.
//
// Cells hold one of five canonical Go types, selected by the column Kind:
//
//	KindString -> string
//	KindInt    -> int64
//	KindFloat  -> float64
//	KindBool   -> bool
//	KindTime   -> time.Time (UTC, microsecond precision once persisted)
package table

import (
	"fmt"
	"time"
)

// Kind is the storage type of a column.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

var kindNames = [...]string{"string", "int", "float", "bool", "time"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown column kind %q", s)
}

// Column names a frame column and its kind.
type Column struct {
	Name string
	Kind Kind
}

// Frame is a row-major table with a fixed schema.
type Frame struct {
	Columns []Column
	Rows    [][]any
}

// NewFrame creates an empty frame with the given schema.
func NewFrame(cols ...Column) *Frame {
	return &Frame{Columns: cols}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Append adds a row after normalizing each value to its column's canonical type.
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.Columns) {
		return fmt.Errorf("row has %d values, frame has %d columns", len(values), len(f.Columns))
	}
	row := make([]any, len(values))
	for i, v := range values {
		nv, err := Normalize(f.Columns[i].Kind, v)
		if err != nil {
			return fmt.Errorf("column %s: %w", f.Columns[i].Name, err)
		}
		row[i] = nv
	}
	f.Rows = append(f.Rows, row)
	return nil
}

// SameSchema reports whether both frames have identical column names and kinds in order.
func (f *Frame) SameSchema(other *Frame) bool {
	if len(f.Columns) != len(other.Columns) {
		return false
	}
	for i := range f.Columns {
		if f.Columns[i] != other.Columns[i] {
			return false
		}
	}
	return true
}

// Normalize converts v to the canonical Go type for kind.
func Normalize(kind Kind, v any) (any, error) {
	switch kind {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int8:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint8:
			return int64(n), nil
		case uint16:
			return int64(n), nil
		case uint32:
			return int64(n), nil
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindTime:
		if t, ok := v.(time.Time); ok {
			return t.UTC(), nil
		}
	}
	return nil, fmt.Errorf("value %v (%T) is not a %s", v, v, kind)
}
