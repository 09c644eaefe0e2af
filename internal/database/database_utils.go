// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package database

import (
	"context"
	"time"
)

// defaultTimeout bounds operations whose caller supplied no deadline.
// Parquet export of a full click log can take minutes.
const defaultTimeout = 10 * time.Minute

// ensureContext adds defaultTimeout when ctx has no deadline
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), defaultTimeout)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, defaultTimeout)
	}

	return ctx, func() {}
}
