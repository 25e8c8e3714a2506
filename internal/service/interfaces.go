// Package service defines the interfaces shared between the application layers.
package service

import (
	"context"
	"time"
)

// KeyValueStore is the persistence contract of the record store.
// Values are opaque whole snapshots; there are no partial updates.
type KeyValueStore interface {
	// Get returns common.ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Storage is a KeyValueStore with lifecycle management.
type Storage interface {
	KeyValueStore

	// PutMany writes every entry atomically.
	PutMany(ctx context.Context, entries map[string][]byte) error
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
