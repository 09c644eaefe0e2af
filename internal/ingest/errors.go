// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable means the input path is missing or unreadable.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrCoercion means the input does not fit its declared schema.
	ErrCoercion = errors.New("type coercion failed")
)

// CoercionError identifies the cell that failed to coerce.
// Row is the 1-based data row in the source, header excluded.
type CoercionError struct {
	Source string
	Chunk  int
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: chunk %d row %d column %s value %q: %v", e.Source, e.Chunk, e.Row, e.Column, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() []error {
	return []error{ErrCoercion, e.Err}
}

// SchemaError reports required columns absent from the source header.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrCoercion
}
