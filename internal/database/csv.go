// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package database

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryCSV streams a delimited file through DuckDB's read_csv with every
// column typed as VARCHAR, so coercion stays with the caller. Gzip input is
// detected from the file extension. The caller must close the returned rows.
func (db *DB) QueryCSV(ctx context.Context, path string) (*sql.Rows, error) {
	query := fmt.Sprintf("SELECT * FROM read_csv(%s, header = true, all_varchar = true)", quoteLiteral(path))
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", path, err)
	}
	return rows, nil
}
