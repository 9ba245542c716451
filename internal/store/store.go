package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store owns the database handle and hands out repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open connects to the SQLite database at dsn, applies pragmas and creates
// any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, seq: &sequenceCounter{db: db}}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// ReportRepo returns a ReportRepo backed by this store.
func (s *Store) ReportRepo() ReportRepo {
	return &reportRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MOCKVIEW_DB environment variable
// 2. $XDG_DATA_HOME/mockview/mockview.db
// 3. ~/.local/share/mockview/mockview.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MOCKVIEW_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mockview", "mockview.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// sqlite returns a statement builder for the SQLite dialect.
func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func execQuery(ctx context.Context, db *sql.DB, q entsql.Querier) (sql.Result, error) {
	query, args := q.Query()
	return db.ExecContext(ctx, query, args...)
}

func selectRows(ctx context.Context, db *sql.DB, q entsql.Querier) (*sql.Rows, error) {
	query, args := q.Query()
	return db.QueryContext(ctx, query, args...)
}

// applyOpts adds QueryOpts filters to a selector over a table with
// "sequence" and "created_at" (unix milliseconds) columns.
func applyOpts(sel *entsql.Selector, opts QueryOpts, timeColumn string) *entsql.Selector {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(timeColumn, opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(timeColumn, opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
