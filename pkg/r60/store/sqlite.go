package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteLedger is a TabularStore backed by a local SQLite database.
type SQLiteLedger struct {
	db *sql.DB
}

// Open opens (or creates) the ledger database at path.
func Open(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return NewSQLiteLedger(db)
}

// NewSQLiteLedger wraps an existing database handle, creating the
// submissions table if it does not exist yet.
func NewSQLiteLedger(db *sql.DB) (*SQLiteLedger, error) {
	s := &SQLiteLedger{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteLedger) migrate() error {
	ctx := context.Background()
	table := `
    CREATE TABLE IF NOT EXISTS submissions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        processed_at TEXT,
        form_number TEXT NOT NULL,
        form_date TEXT,
        form_type TEXT,
        requester TEXT,
        area TEXT,
        item_number TEXT,
        detail_1 TEXT,
        detail_2 TEXT,
        detail_3 TEXT,
        detail_4 TEXT,
        detail_5 TEXT,
        notes TEXT,
        source_file TEXT
    );`
	if _, err := s.db.ExecContext(ctx, table); err != nil {
		return err
	}
	index := `CREATE INDEX IF NOT EXISTS idx_submissions_form_number
        ON submissions (form_number);`
	_, err := s.db.ExecContext(ctx, index)
	return err
}

// FindByNumber reports whether any row carries the given form number.
func (s *SQLiteLedger) FindByNumber(ctx context.Context, number string) (bool, error) {
	query := `SELECT 1 FROM submissions WHERE form_number = ? LIMIT 1`
	var one int
	err := s.db.QueryRowContext(ctx, query, strings.TrimSpace(number)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("duplicate lookup for %s: %w", number, err)
	}
	return true, nil
}

// AppendRows inserts one row per entry. Rows must follow Columns() order.
// Inserts are individual statements, matching the store contract's lack
// of multi-row atomicity.
func (s *SQLiteLedger) AppendRows(ctx context.Context, rows [][]any) (int, error) {
	cols := Columns()
	query := fmt.Sprintf(
		"INSERT INTO submissions (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	written := 0
	for _, row := range rows {
		if len(row) != len(cols) {
			return written, fmt.Errorf("row has %d values, want %d", len(row), len(cols))
		}
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = fmt.Sprint(v)
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return written, fmt.Errorf("append row: %w", err)
		}
		written++
	}
	return written, nil
}

// Close closes the underlying database handle.
func (s *SQLiteLedger) Close() error {
	return s.db.Close()
}
