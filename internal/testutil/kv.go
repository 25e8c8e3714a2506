package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Veraticus/unroll/internal/common"
	"github.com/Veraticus/unroll/internal/service"
)

// MemoryKV is an in-process service.KeyValueStore that counts writes
// and can be told to fail.
type MemoryKV struct {
	data    map[string][]byte
	writes  map[string]int
	failPut error
	failGet error
	mu      sync.Mutex
}

var _ service.KeyValueStore = (*MemoryKV)(nil)

// NewMemoryKV creates an empty store, optionally pre-populated with seed.
func NewMemoryKV(seed map[string][]byte) *MemoryKV {
	kv := &MemoryKV{
		data:   make(map[string][]byte),
		writes: make(map[string]int),
	}
	for k, v := range seed {
		kv.data[k] = append([]byte(nil), v...)
	}
	return kv
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes[key]++
	if m.failPut != nil {
		return m.failPut
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// FailPuts makes every subsequent Put attempt return err. Pass nil to recover.
func (m *MemoryKV) FailPuts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPut = err
}

// FailGets makes every subsequent Get return err. Pass nil to recover.
func (m *MemoryKV) FailGets(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failGet = err
}

// Writes reports how many Put attempts were made for key.
func (m *MemoryKV) Writes(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[key]
}

// Raw returns the stored bytes for key and whether the key exists.
func (m *MemoryKV) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Set writes key without counting it as a Put.
func (m *MemoryKV) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}
