package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"

	apperrors "empresascli/internal/errors"
	"empresascli/internal/table"
)

// stagingTable is the in-memory DuckDB table a snapshot is staged in before COPY.
const stagingTable = "snapshot_staging"

// Store reads and writes Parquet snapshots through an in-memory DuckDB.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open starts an in-memory DuckDB instance.
func Open(logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open DuckDB", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the DuckDB instance
func (s *Store) Close() error {
	return s.db.Close()
}

// Write persists t as a Parquet file at path. Column order and kinds are
// kept. The file is written under a temporary name and renamed into place,
// so a failed write never leaves a partial snapshot behind.
func (s *Store) Write(ctx context.Context, path string, t *table.Table) (err error) {
	if t.NumColumns() == 0 {
		return apperrors.NewStorageError("cannot snapshot a table without columns", nil).WithContext("path", path)
	}

	start := time.Now()
	tmp := path + ".tmp"

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return apperrors.NewStorageError("failed to acquire DuckDB connection", err)
	}
	defer conn.Close()

	defer func() {
		if _, dropErr := conn.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+stagingTable); dropErr != nil && err == nil {
			err = apperrors.NewStorageError("failed to drop staging table", dropErr)
		}
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = conn.ExecContext(ctx, createStatement(t)); err != nil {
		return apperrors.NewStorageError("failed to create staging table", err)
	}

	if err = insertRows(ctx, conn, t); err != nil {
		return err
	}

	copyStmt := fmt.Sprintf("COPY %s TO %s (FORMAT PARQUET)", stagingTable, quoteLiteral(tmp))
	if _, err = conn.ExecContext(ctx, copyStmt); err != nil {
		return apperrors.NewStorageError("failed to write parquet", err).WithContext("path", path)
	}

	if err = os.Rename(tmp, path); err != nil {
		return apperrors.NewStorageError("failed to move snapshot into place", err).WithContext("path", path)
	}

	s.logger.DebugContext(ctx, "Snapshot written",
		slog.String("path", path),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumColumns()),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func insertRows(ctx context.Context, conn *sql.Conn, t *table.Table) error {
	if t.NumRows() == 0 {
		return nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", t.NumColumns()), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", stagingTable, placeholders))
	if err != nil {
		return apperrors.NewStorageError("failed to prepare insert", err)
	}
	defer stmt.Close()

	args := make([]any, t.NumColumns())
	for i := 0; i < t.NumRows(); i++ {
		for j, c := range t.Columns() {
			args[j] = sqlValue(c.Kind, c.Value(i))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return apperrors.NewStorageError("failed to insert row", err).WithContext("row", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("failed to commit rows", err)
	}
	return nil
}

// Read loads the Parquet file at path. DATE and TIMESTAMP columns become
// Date columns; every other type is read as text.
func (s *Store) Read(ctx context.Context, path string) (*table.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("snapshot").WithContext("path", path)
		}
		return nil, apperrors.NewStorageError("failed to stat snapshot", err).WithContext("path", path)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM read_parquet("+quoteLiteral(path)+")")
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read parquet", err).WithContext("path", path)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read parquet schema", err)
	}

	columns := make([]*table.Column, len(types))
	for j, ct := range types {
		columns[j] = table.NewColumn(ct.Name(), kindOf(ct.DatabaseTypeName()))
	}
	result, err := table.New(columns...)
	if err != nil {
		return nil, apperrors.NewStorageError("invalid parquet schema", err).WithContext("path", path)
	}

	raw := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for j := range raw {
		ptrs[j] = &raw[j]
	}
	cells := make([]table.Value, len(columns))

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, apperrors.NewStorageError("failed to scan parquet row", err)
		}
		for j, v := range raw {
			cells[j] = tableValue(columns[j].Kind, v)
		}
		if err := result.AppendRow(cells...); err != nil {
			return nil, apperrors.NewStorageError("failed to append row", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate parquet rows", err)
	}

	s.logger.DebugContext(ctx, "Snapshot read",
		slog.String("path", path),
		slog.Int("rows", result.NumRows()),
		slog.Int("columns", result.NumColumns()))
	return result, nil
}

func createStatement(t *table.Table) string {
	defs := make([]string, t.NumColumns())
	for j, c := range t.Columns() {
		typ := "VARCHAR"
		if c.Kind == table.Date {
			typ = "DATE"
		}
		defs[j] = quoteIdent(c.Name) + " " + typ
	}
	return fmt.Sprintf("CREATE OR REPLACE TABLE %s (%s)", stagingTable, strings.Join(defs, ", "))
}

func sqlValue(kind table.Kind, v table.Value) any {
	if kind == table.Date {
		return sql.NullTime{Time: v.Time, Valid: v.Valid}
	}
	return sql.NullString{String: v.Str, Valid: v.Valid}
}

func kindOf(dbType string) table.Kind {
	switch strings.ToUpper(dbType) {
	case "DATE", "TIMESTAMP", "TIMESTAMP_NS", "TIMESTAMP_MS", "TIMESTAMP_S", "TIMESTAMPTZ":
		return table.Date
	default:
		return table.String
	}
}

func tableValue(kind table.Kind, v any) table.Value {
	switch x := v.(type) {
	case nil:
		return table.Null()
	case time.Time:
		if kind == table.Date {
			return table.DateValue(x)
		}
		return table.StringValue(x.Format(time.RFC3339))
	case string:
		return table.StringValue(x)
	case []byte:
		return table.StringValue(string(x))
	default:
		return table.StringValue(fmt.Sprint(x))
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
