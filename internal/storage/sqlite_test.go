package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/unroll/internal/common"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestSQLiteStorage_GetMissingKey(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "unroll_subs")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSQLiteStorage_PutGetOverwrite(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "unroll_subs", []byte(`[1]`)))
	got, err := store.Get(ctx, "unroll_subs")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	require.NoError(t, store.Put(ctx, "unroll_subs", []byte(`[1,2]`)))
	got, err = store.Get(ctx, "unroll_subs")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"unroll_subs"}, keys)

	ts, err := store.UpdatedAt(ctx, "unroll_subs")
	require.NoError(t, err)
	assert.False(t, ts.IsZero())
}

func TestSQLiteStorage_PutManyAndReplace(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.PutMany(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}))
	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, store.Replace(ctx, map[string][]byte{"c": []byte("3")}))
	snapshot, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"c": []byte("3")}, snapshot)
}

func TestSQLiteStorage_Delete(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"), "deleting a missing key is not an error")

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	//nolint:staticcheck // nil context is the case under test
	_, err := store.Get(nil, "k")
	assert.ErrorIs(t, err, ErrNilContext)

	err = store.Put(ctx, "  ", []byte("v"))
	assert.ErrorIs(t, err, ErrEmptyString)

	err = store.PutMany(ctx, map[string][]byte{"": []byte("v")})
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = NewSQLiteStorage("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(MemoryPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Put(ctx, "k", []byte("v")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "unroll.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Put(ctx, "unroll_settings", []byte(`{"name":"x"}`)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	got, err := reopened.Get(ctx, "unroll_settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, string(got))
	assert.Equal(t, dbPath, reopened.Path())
}
