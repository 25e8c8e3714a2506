package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckpointManager(t *testing.T) (*SQLiteStorage, *CheckpointManager) {
	t.Helper()
	store, cleanup := createTestStorage(t)
	t.Cleanup(cleanup)

	cm, err := store.NewCheckpointManager()
	require.NoError(t, err)
	t.Cleanup(cm.Close)

	// Distinct, increasing timestamps keep auto checkpoint tags unique.
	base := time.Date(2024, time.August, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	cm.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	return store, cm
}

func TestCheckpointManager_CreateAndList(t *testing.T) {
	store, cm := setupCheckpointManager(t)
	ctx := context.Background()

	require.NoError(t, store.PutMany(ctx, map[string][]byte{
		"unroll_subs":     []byte(`[]`),
		"unroll_settings": []byte(`{"name":"a"}`),
	}))

	info, err := cm.Create(ctx, "before-cleanup", "manual")
	require.NoError(t, err)
	assert.Equal(t, "before-cleanup", info.ID)
	assert.Equal(t, 2, info.KeyCount)
	assert.Equal(t, ExpectedSchemaVersion, info.SchemaVersion)
	assert.Positive(t, info.FileSize)
	assert.False(t, info.IsAuto)

	_, err = cm.Create(ctx, "before-cleanup", "again")
	assert.ErrorIs(t, err, ErrCheckpointExists)

	second, err := cm.Create(ctx, "", "generated tag")
	require.NoError(t, err)
	assert.Contains(t, second.ID, "checkpoint-")

	list, err := cm.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
}

func TestCheckpointManager_Restore(t *testing.T) {
	store, cm := setupCheckpointManager(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "unroll_subs", []byte(`[{"id":1}]`)))
	_, err := cm.Create(ctx, "snap", "")
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "unroll_subs", []byte(`[]`)))
	require.NoError(t, store.Put(ctx, "extra", []byte(`"x"`)))

	require.NoError(t, cm.Restore(ctx, "snap"))

	snapshot, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"unroll_subs": []byte(`[{"id":1}]`)}, snapshot)

	list, err := cm.List(ctx)
	require.NoError(t, err)
	var autos int
	for _, cp := range list {
		if cp.IsAuto {
			autos++
		}
	}
	assert.Equal(t, 1, autos, "restore saves the replaced state first")
}

func TestCheckpointManager_RestoreMissingAndCorrupted(t *testing.T) {
	_, cm := setupCheckpointManager(t)
	ctx := context.Background()

	assert.ErrorIs(t, cm.Restore(ctx, "nope"), ErrCheckpointNotFound)
	assert.ErrorIs(t, cm.Restore(ctx, "../escape"), ErrInvalidTag)

	require.NoError(t, os.WriteFile(filepath.Join(cm.Dir(), "broken"+checkpointExt), []byte("not zstd"), 0600))
	assert.ErrorIs(t, cm.Restore(ctx, "broken"), ErrCheckpointCorrupted)
}

func TestCheckpointManager_Delete(t *testing.T) {
	_, cm := setupCheckpointManager(t)
	ctx := context.Background()

	_, err := cm.Create(ctx, "gone", "")
	require.NoError(t, err)
	require.NoError(t, cm.Delete(ctx, "gone"))
	assert.ErrorIs(t, cm.Delete(ctx, "gone"), ErrCheckpointNotFound)

	list, err := cm.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCheckpointManager_CleanupOldAutoCheckpoints(t *testing.T) {
	_, cm := setupCheckpointManager(t)
	ctx := context.Background()

	_, err := cm.Create(ctx, "manual", "kept regardless")
	require.NoError(t, err)

	for i := 0; i < maxAutoCheckpoints+3; i++ {
		_, err := cm.AutoCheckpoint(ctx, fmt.Sprintf("op%d", i))
		require.NoError(t, err)
	}

	list, err := cm.List(ctx)
	require.NoError(t, err)

	var autos, manual int
	for _, cp := range list {
		if cp.IsAuto {
			autos++
		} else {
			manual++
		}
	}
	assert.Equal(t, maxAutoCheckpoints, autos)
	assert.Equal(t, 1, manual)
}
