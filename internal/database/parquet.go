// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/table"
)

var stageSeq atomic.Uint64

// duckType maps a frame column kind to its DuckDB column type.
func duckType(k table.Kind) (string, error) {
	switch k {
	case table.KindString:
		return "VARCHAR", nil
	case table.KindInt:
		return "BIGINT", nil
	case table.KindFloat:
		return "DOUBLE", nil
	case table.KindBool:
		return "BOOLEAN", nil
	case table.KindTime:
		return "TIMESTAMP", nil
	}
	return "", fmt.Errorf("unsupported column kind %s", k)
}

// frameKind maps a DuckDB result type back to a frame column kind.
func frameKind(dbType string) (table.Kind, error) {
	t := strings.ToUpper(dbType)
	switch {
	case t == "VARCHAR" || t == "TEXT" || t == "STRING" || t == "ENUM":
		return table.KindString, nil
	case t == "BIGINT" || t == "INTEGER" || t == "SMALLINT" || t == "TINYINT" ||
		t == "UBIGINT" || t == "UINTEGER" || t == "USMALLINT" || t == "UTINYINT":
		return table.KindInt, nil
	case t == "DOUBLE" || t == "FLOAT" || strings.HasPrefix(t, "DECIMAL"):
		return table.KindFloat, nil
	case t == "BOOLEAN":
		return table.KindBool, nil
	case strings.HasPrefix(t, "TIMESTAMP") || t == "DATE":
		return table.KindTime, nil
	}
	return 0, fmt.Errorf("unsupported duckdb type %s", dbType)
}

// WriteParquet stages f in a temporary table and exports it to path.
//
// The staging table, the insert transaction and the COPY share one pinned
// connection because DuckDB temporary tables are connection-local.
func (db *DB) WriteParquet(ctx context.Context, path string, f *table.Frame) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	if len(f.Columns) == 0 {
		return fmt.Errorf("frame has no columns")
	}

	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer closeWithLog(conn, "duckdb connection")

	stage := fmt.Sprintf("stage_%d", stageSeq.Add(1))
	defs := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		typ, typErr := duckType(c.Kind)
		if typErr != nil {
			return typErr
		}
		defs[i] = quoteIdent(c.Name) + " " + typ
	}

	createQuery := fmt.Sprintf("CREATE TEMPORARY TABLE %s (%s)", quoteIdent(stage), strings.Join(defs, ", "))
	if _, err := conn.ExecContext(ctx, createQuery); err != nil {
		return fmt.Errorf("failed to create staging table: %w", err)
	}
	defer func() {
		if _, dropErr := conn.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+quoteIdent(stage)); dropErr != nil {
			logging.Warn().Err(dropErr).Str("table", stage).Msg("Failed to drop staging table")
		}
	}()

	if err := insertRows(ctx, conn, stage, f); err != nil {
		return err
	}

	exportQuery := fmt.Sprintf(`
		COPY %s TO ? (
			FORMAT PARQUET,
			COMPRESSION '%s',
			ROW_GROUP_SIZE 100000
		)`, quoteIdent(stage), db.compression)

	if _, err := conn.ExecContext(ctx, exportQuery, path); err != nil {
		return fmt.Errorf("failed to export parquet: %w", err)
	}

	logging.Debug().
		Str("path", path).
		Int("rows", f.Len()).
		Dur("duration", time.Since(start)).
		Msg("Parquet written via DuckDB")
	return nil
}

func insertRows(ctx context.Context, conn *sql.Conn, stage string, f *table.Frame) (err error) {
	if f.Len() == 0 {
		return nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(f.Columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(stage), placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i, row := range f.Rows {
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReadParquet loads a Parquet file into a frame.
func (db *DB) ReadParquet(ctx context.Context, path string) (*table.Frame, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, "SELECT * FROM read_parquet("+quoteLiteral(path)+")")
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet: %w", err)
	}
	defer closeWithLog(rows, "parquet rows")

	f, err := scanFrame(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan parquet %s: %w", path, err)
	}
	return f, nil
}

// scanFrame materializes a result set. NULL cells become the column's zero value.
func scanFrame(rows *sql.Rows) (*table.Frame, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	f := &table.Frame{Columns: make([]table.Column, len(types))}
	for i, ct := range types {
		kind, kindErr := frameKind(ct.DatabaseTypeName())
		if kindErr != nil {
			return nil, fmt.Errorf("column %s: %w", ct.Name(), kindErr)
		}
		f.Columns[i] = table.Column{Name: ct.Name(), Kind: kind}
	}

	for rows.Next() {
		raw := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range raw {
			if v == nil {
				raw[i] = zeroValue(f.Columns[i].Kind)
			}
		}
		if err := f.Append(raw...); err != nil {
			return nil, err
		}
	}
	return f, rows.Err()
}

func zeroValue(k table.Kind) any {
	switch k {
	case table.KindString:
		return ""
	case table.KindInt:
		return int64(0)
	case table.KindFloat:
		return float64(0)
	case table.KindBool:
		return false
	default:
		return time.Time{}
	}
}
