// Package testutil provides test utilities for the unroll project.
// It offers isolated in-memory databases and an instrumented key-value fake.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/unroll/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new migrated in-memory test database.
// It automatically handles cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	s := store.New(db.Storage, feed)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Seed           map[string][]byte
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	db, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	// Run migrations unless skipped
	if !opts.SkipMigrations {
		if err := db.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if len(opts.Seed) > 0 {
		if err := db.PutMany(ctx, opts.Seed); err != nil {
			t.Fatalf("failed to seed test database: %v", err)
		}
	}

	// Run custom setup
	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, db); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = db.Close()
	})

	return &TestDB{
		Storage: db,
		t:       t,
	}
}

// MustGet returns the raw value stored under key or fails the test.
func (db *TestDB) MustGet(key string) []byte {
	db.t.Helper()
	value, err := db.Storage.Get(context.Background(), key)
	if err != nil {
		db.t.Fatalf("failed to read %q: %v", key, err)
	}
	return value
}
