// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ColumnType is the semantic type a raw cell is coerced to.
type ColumnType uint8

const (
	TypeString ColumnType = iota
	TypeInt32
	TypeInt8
	TypeCategory
	TypeTimestamp

	// TypeEpochOrTimestamp accepts Unix nanoseconds (integer-divided by 1e9
	// and read as seconds) or any TypeTimestamp layout.
	TypeEpochOrTimestamp
)

func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt32:
		return "int32"
	case TypeInt8:
		return "int8"
	case TypeCategory:
		return "category"
	case TypeTimestamp:
		return "timestamp"
	case TypeEpochOrTimestamp:
		return "epoch_or_timestamp"
	}
	return fmt.Sprintf("type(%d)", t)
}

// Column declares one source column.
type Column struct {
	Name     string
	Type     ColumnType
	Required bool
}

// Schema is the ordered column declaration of a source.
type Schema []Column

// binding maps schema positions to header positions; -1 marks an optional
// column absent from the header.
type binding struct {
	source string
	schema Schema
	pos    []int
	index  map[string]int // column name -> schema position
}

// bind validates the header once at ingest entry. Extra header columns are ignored.
func (s Schema) bind(source string, header []string) (*binding, error) {
	headerPos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := headerPos[h]; !dup {
			headerPos[h] = i
		}
	}

	b := &binding{source: source, schema: s, pos: make([]int, len(s)), index: make(map[string]int, len(s))}
	var missing []string
	for i, col := range s {
		b.index[col.Name] = i
		p, ok := headerPos[col.Name]
		if !ok {
			if col.Required {
				missing = append(missing, col.Name)
			}
			p = -1
		}
		b.pos[i] = p
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: source, Missing: missing}
	}
	return b, nil
}

// headerIndex resolves raw column positions for a filter.
func headerIndex(source string, header []string, names []string) ([]int, error) {
	out := make([]int, len(names))
	var missing []string
	for i, name := range names {
		out[i] = -1
		for j, h := range header {
			if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == name {
				out[i] = j
				break
			}
		}
		if out[i] < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: source, Missing: missing}
	}
	return out, nil
}

// coercer converts raw cells. It interns category values across chunks.
type coercer struct {
	categories map[string]string
}

func newCoercer() *coercer {
	return &coercer{categories: make(map[string]string)}
}

var errEmptyRequired = errors.New("empty value in required column")

func (c *coercer) coerce(col Column, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if col.Required {
			return nil, errEmptyRequired
		}
		return zeroFor(col.Type), nil
	}

	switch col.Type {
	case TypeString:
		return raw, nil
	case TypeCategory:
		if v, ok := c.categories[raw]; ok {
			return v, nil
		}
		c.categories[raw] = raw
		return raw, nil
	case TypeInt32:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case TypeInt8:
		n, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return nil, err
		}
		return int8(n), nil
	case TypeTimestamp:
		return ParseTimestamp(raw)
	case TypeEpochOrTimestamp:
		return ParseEpochOrTimestamp(raw)
	}
	return nil, fmt.Errorf("unsupported column type %s", col.Type)
}

func zeroFor(t ColumnType) any {
	switch t {
	case TypeInt32:
		return int32(0)
	case TypeInt8:
		return int8(0)
	case TypeTimestamp, TypeEpochOrTimestamp:
		return time.Time{}
	default:
		return ""
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the textual timestamp forms found in the raw logs.
// Inputs without an offset are UTC. Fractional seconds are accepted on every
// layout that carries seconds.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ParseEpochOrTimestamp decodes a campaign creation instant. An integer is
// Unix nanoseconds, floor-divided by 1e9 and read as whole seconds.
func ParseEpochOrTimestamp(s string) (time.Time, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(floorDiv(n, 1_000_000_000), 0).UTC(), nil
	}
	return ParseTimestamp(s)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Record gives Source.Build typed access to one coerced row.
type Record struct {
	b      *binding
	values []any
}

func (r Record) get(name string) any {
	i, ok := r.b.index[name]
	if !ok {
		return nil
	}
	return r.values[i]
}

// String returns a string or category column.
func (r Record) String(name string) string {
	s, _ := r.get(name).(string)
	return s
}

func (r Record) Int32(name string) int32 {
	n, _ := r.get(name).(int32)
	return n
}

func (r Record) Int8(name string) int8 {
	n, _ := r.get(name).(int8)
	return n
}

func (r Record) Time(name string) time.Time {
	t, _ := r.get(name).(time.Time)
	return t
}
