// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package ingest

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01T10:15:30Z", time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC)},
		{"2024-03-01T10:15:30+03:00", time.Date(2024, 3, 1, 7, 15, 30, 0, time.UTC)},
		{"2024-03-01 10:15:30", time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC)},
		{"2024-03-01 10:15:30.250", time.Date(2024, 3, 1, 10, 15, 30, 250_000_000, time.UTC)},
		{"2024-03-01T10:15:30", time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error = %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseTimestamp(%q) location = %v, want UTC", tt.in, got.Location())
			}
		})
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("ParseTimestamp(yesterday) should fail")
	}
}

func TestParseEpochOrTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"nanoseconds", "1700000000123456789", time.Unix(1700000000, 0).UTC()},
		{"exact second", "1700000000000000000", time.Unix(1700000000, 0).UTC()},
		{"negative floors", "-1", time.Unix(-1, 0).UTC()},
		{"iso text", "2023-11-14 22:13:20", time.Unix(1700000000, 0).UTC()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEpochOrTimestamp(tt.in)
			if err != nil {
				t.Fatalf("ParseEpochOrTimestamp(%q) error = %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseEpochOrTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int64 }{
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 2, -4},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSchemaBind(t *testing.T) {
	schema := Schema{
		{Name: "id", Type: TypeInt32, Required: true},
		{Name: "name", Type: TypeString},
	}

	t.Run("header with BOM and extra columns", func(t *testing.T) {
		b, err := schema.bind("test", []string{"\ufeffid", "extra", "name"})
		if err != nil {
			t.Fatalf("bind() error = %v", err)
		}
		if b.pos[0] != 0 || b.pos[1] != 2 {
			t.Errorf("pos = %v, want [0 2]", b.pos)
		}
	})

	t.Run("optional column absent", func(t *testing.T) {
		b, err := schema.bind("test", []string{"id"})
		if err != nil {
			t.Fatalf("bind() error = %v", err)
		}
		if b.pos[1] != -1 {
			t.Errorf("pos[1] = %d, want -1", b.pos[1])
		}
	})

	t.Run("required column absent", func(t *testing.T) {
		_, err := schema.bind("test", []string{"name"})
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("bind() error = %v, want *SchemaError", err)
		}
		if len(se.Missing) != 1 || se.Missing[0] != "id" {
			t.Errorf("Missing = %v, want [id]", se.Missing)
		}
		if !errors.Is(err, ErrCoercion) {
			t.Error("schema error should match ErrCoercion")
		}
	})
}

func TestCoercer(t *testing.T) {
	c := newCoercer()

	tests := []struct {
		name    string
		col     Column
		raw     string
		want    any
		wantErr bool
	}{
		{"int32", Column{Type: TypeInt32}, "42", int32(42), false},
		{"int32 trimmed", Column{Type: TypeInt32}, " 7 ", int32(7), false},
		{"int32 overflow", Column{Type: TypeInt32}, "3000000000", nil, true},
		{"int8", Column{Type: TypeInt8}, "77", int8(77), false},
		{"int8 overflow", Column{Type: TypeInt8}, "200", nil, true},
		{"int not a number", Column{Type: TypeInt32}, "abc", nil, true},
		{"string", Column{Type: TypeString}, "hello", "hello", false},
		{"category", Column{Type: TypeCategory}, "Android", "Android", false},
		{"empty optional int", Column{Type: TypeInt8}, "", int8(0), false},
		{"empty optional string", Column{Type: TypeString}, "", "", false},
		{"empty required", Column{Type: TypeString, Required: true}, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.coerce(tt.col, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("coerce() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("coerce() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}
