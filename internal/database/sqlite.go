package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"riverdesk/internal/database/migrations"
	"riverdesk/internal/desk"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements desk.Store on a single SQLite table. Each key is a
// row; Set is an upsert, so a collection write is atomic.
type SQLiteStore struct {
	db    *sqlx.DB
	path  string
	clock desk.Clock
}

type entry struct {
	Name      string `db:"name"`
	Value     []byte `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

// NewSQLiteStore opens the database at path and migrates it to the latest
// schema. path can be a file path or ":memory:". clock may be nil.
func NewSQLiteStore(path string, clock desk.Clock) (*SQLiteStore, error) {
	if clock == nil {
		clock = desk.RealClock{}
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}

	return &SQLiteStore{db: db, path: path, clock: clock}, nil
}

// OpenConnection opens and configures a SQLite connection.
func OpenConnection(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection, and the store is
	// written by one process, so a single connection is enough everywhere.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM entries WHERE name = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	row := entry{Name: key, Value: value, UpdatedAt: s.clock.Now().UTC().Format(time.RFC3339Nano)}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO entries (name, value, updated_at) VALUES (:name, :value, :updated_at)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, row)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE name = ?`, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys, `SELECT name FROM entries ORDER BY name`); err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return keys, nil
}

// UpdatedAt returns when key was last written.
func (s *SQLiteStore) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var e entry
	err := s.db.GetContext(ctx, &e, `SELECT name, value, updated_at FROM entries WHERE name = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("reading %s: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339Nano, e.UpdatedAt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing updated_at of %s: %w", key, err)
	}
	return t, true, nil
}

// ValidateSetup verifies that the schema matches the migrations embedded in
// this binary.
func (s *SQLiteStore) ValidateSetup() error {
	if err := migrations.CheckDBMigrationStatus(s.db.DB); err != nil {
		return fmt.Errorf("validating %s: %w", s.path, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Compile-time check that SQLiteStore implements desk.Store interface
var _ desk.Store = (*SQLiteStore)(nil)
