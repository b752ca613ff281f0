package memory

import (
	"context"
	"sync"

	"github.com/lifeflow/core/internal/ports"
)

// MetaStore is a ports.MetaStore over a map.
type MetaStore struct {
	mu     sync.Mutex
	values map[string]string
}

var _ ports.MetaStore = (*MetaStore)(nil)

func NewMetaStore() *MetaStore {
	return &MetaStore{values: map[string]string{}}
}

func (m *MetaStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MetaStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
