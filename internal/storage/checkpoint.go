package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	checkpointExt = ".json.zst"
	metadataExt   = ".meta.json"

	// maxAutoCheckpoints is how many automatic checkpoints are kept.
	maxAutoCheckpoints = 5
)

// CheckpointManager saves and restores compressed snapshots of every stored key.
type CheckpointManager struct {
	storage        *SQLiteStorage
	compression    *zstdCompression
	checkpointsDir string
	now            func() time.Time
}

// CheckpointMetadata contains metadata about a checkpoint.
type CheckpointMetadata struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	Keys          []string  `json:"keys"`
	FileSize      int64     `json:"file_size"`
	SchemaVersion int       `json:"schema_version"`
	IsAuto        bool      `json:"is_auto"`
}

// CheckpointInfo represents information about a checkpoint for listing.
type CheckpointInfo struct {
	CreatedAt     time.Time
	ID            string
	Description   string
	FileSize      int64
	KeyCount      int
	SchemaVersion int
	IsAuto        bool
}

// checkpointDocument is the payload written to disk before compression.
type checkpointDocument struct {
	Entries  map[string]string  `json:"entries"`
	Metadata CheckpointMetadata `json:"metadata"`
}

// Common errors.
var (
	ErrCheckpointNotFound  = errors.New("checkpoint not found")
	ErrCheckpointCorrupted = errors.New("checkpoint integrity check failed")
	ErrCheckpointExists    = errors.New("checkpoint already exists")
)

// NewCheckpointManager creates a new checkpoint manager rooted at checkpointsDir.
func NewCheckpointManager(storage *SQLiteStorage, checkpointsDir string) (*CheckpointManager, error) {
	if storage == nil {
		return nil, errors.New("storage is required")
	}
	if err := os.MkdirAll(checkpointsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	compression, err := newZstdCompression()
	if err != nil {
		return nil, err
	}

	return &CheckpointManager{
		storage:        storage,
		compression:    compression,
		checkpointsDir: checkpointsDir,
		now:            time.Now,
	}, nil
}

// Close releases the compression resources.
func (cm *CheckpointManager) Close() {
	cm.compression.Close()
}

// Dir returns the directory holding checkpoint files.
func (cm *CheckpointManager) Dir() string {
	return cm.checkpointsDir
}

// Create writes a checkpoint of the current state under tag.
func (cm *CheckpointManager) Create(ctx context.Context, tag, description string) (*CheckpointInfo, error) {
	if tag == "" {
		tag = fmt.Sprintf("checkpoint-%s", cm.now().Format("2006-01-02-150405"))
	}
	return cm.create(ctx, tag, description, false)
}

// AutoCheckpoint creates a timestamped automatic checkpoint and prunes old ones.
func (cm *CheckpointManager) AutoCheckpoint(ctx context.Context, prefix string) (*CheckpointInfo, error) {
	tag := fmt.Sprintf("auto-%s-%s", prefix, cm.now().Format("20060102-150405.000"))
	info, err := cm.create(ctx, tag, "Automatic checkpoint before "+prefix, true)
	if err != nil {
		return nil, err
	}

	if err := cm.cleanupOldAutoCheckpoints(ctx); err != nil {
		slog.Warn("failed to clean up old auto checkpoints", "error", err)
	}
	return info, nil
}

func (cm *CheckpointManager) create(ctx context.Context, tag, description string, auto bool) (*CheckpointInfo, error) {
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	checkpointPath := cm.checkpointPath(tag)
	if _, err := os.Stat(checkpointPath); err == nil {
		return nil, ErrCheckpointExists
	}

	schemaVersion, err := cm.storage.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := cm.storage.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	doc := checkpointDocument{
		Entries: make(map[string]string, len(snapshot)),
		Metadata: CheckpointMetadata{
			ID:            tag,
			CreatedAt:     cm.now(),
			Description:   description,
			SchemaVersion: schemaVersion,
			IsAuto:        auto,
		},
	}
	for key, value := range snapshot {
		doc.Entries[key] = string(value)
		doc.Metadata.Keys = append(doc.Metadata.Keys, key)
	}
	sort.Strings(doc.Metadata.Keys)

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	compressed := cm.compression.Compress(payload)

	if err := os.WriteFile(checkpointPath, compressed, 0600); err != nil {
		return nil, fmt.Errorf("failed to write checkpoint: %w", err)
	}

	metadata := doc.Metadata
	metadata.FileSize = int64(len(compressed))

	if err := cm.saveMetadata(cm.metadataPath(tag), metadata); err != nil {
		if rmErr := os.Remove(checkpointPath); rmErr != nil {
			slog.Error("failed to remove checkpoint file after metadata save failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	// Non-fatal: the checkpoint files are authoritative.
	if err := cm.storeMetadataInDB(ctx, metadata); err != nil {
		slog.Warn("failed to store checkpoint metadata in database", "error", err)
	}

	info := infoFromMetadata(metadata)
	return &info, nil
}

// List returns all checkpoints, newest first.
func (cm *CheckpointManager) List(_ context.Context) ([]CheckpointInfo, error) {
	entries, err := os.ReadDir(cm.checkpointsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	checkpoints := make([]CheckpointInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), metadataExt) {
			continue
		}

		metadata, err := cm.loadMetadata(filepath.Join(cm.checkpointsDir, entry.Name()))
		if err != nil {
			// Skip corrupted metadata files
			continue
		}
		checkpoints = append(checkpoints, infoFromMetadata(*metadata))
	}

	sort.Slice(checkpoints, func(i, j int) bool {
		return checkpoints[i].CreatedAt.After(checkpoints[j].CreatedAt)
	})

	return checkpoints, nil
}

// Restore replaces the stored state with the checkpoint's contents.
// The current state is saved as an automatic checkpoint first.
func (cm *CheckpointManager) Restore(ctx context.Context, checkpointID string) error {
	if err := validateTag(checkpointID); err != nil {
		return err
	}

	doc, err := cm.readDocument(checkpointID)
	if err != nil {
		return err
	}

	if _, err := cm.AutoCheckpoint(ctx, "restore"); err != nil {
		return fmt.Errorf("failed to save current state before restore: %w", err)
	}

	entries := make(map[string][]byte, len(doc.Entries))
	for key, value := range doc.Entries {
		entries[key] = []byte(value)
	}

	if err := cm.storage.Replace(ctx, entries); err != nil {
		return fmt.Errorf("failed to restore checkpoint: %w", err)
	}

	slog.Info("Restored checkpoint", "id", checkpointID, "keys", len(entries))
	return nil
}

// Delete removes a checkpoint.
func (cm *CheckpointManager) Delete(ctx context.Context, checkpointID string) error {
	if err := validateTag(checkpointID); err != nil {
		return err
	}

	checkpointPath := cm.checkpointPath(checkpointID)
	if _, err := os.Stat(checkpointPath); err != nil {
		if os.IsNotExist(err) {
			return ErrCheckpointNotFound
		}
		return fmt.Errorf("failed to access checkpoint: %w", err)
	}

	if err := os.Remove(checkpointPath); err != nil {
		return fmt.Errorf("failed to remove checkpoint file: %w", err)
	}

	if err := os.Remove(cm.metadataPath(checkpointID)); err != nil {
		slog.Debug("failed to remove metadata file", "error", err, "id", checkpointID)
	}

	if _, err := cm.storage.db.ExecContext(ctx, "DELETE FROM checkpoint_metadata WHERE id = ?", checkpointID); err != nil {
		slog.Debug("failed to remove checkpoint metadata from database", "error", err, "id", checkpointID)
	}

	return nil
}

func (cm *CheckpointManager) readDocument(checkpointID string) (*checkpointDocument, error) {
	compressed, err := os.ReadFile(cm.checkpointPath(checkpointID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	payload, err := cm.compression.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckpointCorrupted, err)
	}

	var doc checkpointDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckpointCorrupted, err)
	}
	if doc.Metadata.ID != checkpointID {
		return nil, fmt.Errorf("%w: id mismatch", ErrCheckpointCorrupted)
	}
	return &doc, nil
}

func (cm *CheckpointManager) cleanupOldAutoCheckpoints(ctx context.Context) error {
	checkpoints, err := cm.List(ctx)
	if err != nil {
		return err
	}

	kept := 0
	for _, cp := range checkpoints {
		if !cp.IsAuto {
			continue
		}
		kept++
		if kept <= maxAutoCheckpoints {
			continue
		}
		if err := cm.Delete(ctx, cp.ID); err != nil {
			return fmt.Errorf("failed to delete auto checkpoint %s: %w", cp.ID, err)
		}
	}
	return nil
}

func (cm *CheckpointManager) saveMetadata(path string, metadata CheckpointMetadata) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func (cm *CheckpointManager) loadMetadata(path string) (*CheckpointMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata CheckpointMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &metadata, nil
}

func (cm *CheckpointManager) storeMetadataInDB(ctx context.Context, metadata CheckpointMetadata) error {
	_, err := cm.storage.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO checkpoint_metadata
		(id, created_at, description, file_size, key_count, schema_version, is_auto)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, metadata.ID, metadata.CreatedAt, metadata.Description, metadata.FileSize,
		len(metadata.Keys), metadata.SchemaVersion, metadata.IsAuto)
	return err
}

func (cm *CheckpointManager) checkpointPath(tag string) string {
	return filepath.Join(cm.checkpointsDir, tag+checkpointExt)
}

func (cm *CheckpointManager) metadataPath(tag string) string {
	return filepath.Join(cm.checkpointsDir, tag+metadataExt)
}

func infoFromMetadata(m CheckpointMetadata) CheckpointInfo {
	return CheckpointInfo{
		ID:            m.ID,
		CreatedAt:     m.CreatedAt,
		Description:   m.Description,
		FileSize:      m.FileSize,
		KeyCount:      len(m.Keys),
		SchemaVersion: m.SchemaVersion,
		IsAuto:        m.IsAuto,
	}
}
