package storage

import (
	"context"
	"sync"
)

// MemoryStateRepository backs the persisted subset with a process-local map.
// State does not survive restarts; intended for development and tests.
type MemoryStateRepository struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{blobs: make(map[string][]byte)}
}

func (m *MemoryStateRepository) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	payload, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return cp, nil
}

func (m *MemoryStateRepository) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.blobs[key] = cp
	return nil
}

func (m *MemoryStateRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, key)
	return nil
}
