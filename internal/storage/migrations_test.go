package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store, err := NewSQLiteStorage(MemoryPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	require.NoError(t, store.Migrate(ctx))

	version, err = store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("v")))
	require.NoError(t, store.Migrate(ctx))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestMigrations_AreOrdered(t *testing.T) {
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, "migration %q out of order", m.Description)
	}
	assert.Equal(t, ExpectedSchemaVersion, migrations[len(migrations)-1].Version)
}
