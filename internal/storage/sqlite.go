package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/unroll/internal/common"
	"github.com/Veraticus/unroll/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteStorage implements service.Storage as a key-value table in SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

var _ service.Storage = (*SQLiteStorage)(nil)

// queryable is satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// Validate input
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn := dbPath
	if dbPath != MemoryPath {
		// Ensure directory exists
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	// Open database
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps an in-memory database alive and serialises writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// NewCheckpointManager creates a checkpoint manager writing next to the database file.
func (s *SQLiteStorage) NewCheckpointManager() (*CheckpointManager, error) {
	dir := filepath.Join(filepath.Dir(s.dbPath), "checkpoints")
	if s.dbPath == MemoryPath {
		dir = filepath.Join(os.TempDir(), "unroll-checkpoints")
	}
	return NewCheckpointManager(s, dir)
}

// Get returns the value stored under key.
func (s *SQLiteStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return []byte(value), nil
}

// Put replaces the value stored under key.
func (s *SQLiteStorage) Put(ctx context.Context, key string, value []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	return s.putTx(ctx, s.db, key, value)
}

func (s *SQLiteStorage) putTx(ctx context.Context, q queryable, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// PutMany writes all entries in a single transaction.
func (s *SQLiteStorage) PutMany(ctx context.Context, entries map[string][]byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for key := range entries {
		if err := validateKey(key); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range entries {
		if err := s.putTx(ctx, tx, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Replace swaps the whole table contents for entries in a single transaction.
func (s *SQLiteStorage) Replace(ctx context.Context, entries map[string][]byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	for key, value := range entries {
		if err := validateKey(key); err != nil {
			return err
		}
		if err := s.putTx(ctx, tx, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLiteStorage) Delete(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in lexical order.
func (s *SQLiteStorage) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Snapshot reads every entry, for checkpoints.
func (s *SQLiteStorage) Snapshot(ctx context.Context) (map[string][]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		out[key] = []byte(value)
	}
	return out, rows.Err()
}

// UpdatedAt returns when key was last written.
func (s *SQLiteStorage) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	if err := validateKey(key); err != nil {
		return time.Time{}, err
	}
	var ts time.Time
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read timestamp for %s: %w", key, err)
	}
	return ts, nil
}

func validateKey(key string) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if strings.ContainsAny(key, "\x00") {
		return fmt.Errorf("%w: key contains NUL", ErrInvalidKey)
	}
	return nil
}
