package memory

import (
	"context"
	"fmt"
	"sync"

	"bloodlink/pkg/platform/sentinel"
)

// InMemoryKVStore is a process-local KVStore for tests and development.
type InMemoryKVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func New() *InMemoryKVStore {
	return &InMemoryKVStore{values: make(map[string][]byte)}
}

func (s *InMemoryKVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("cooldown key %q: %w", key, sentinel.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (s *InMemoryKVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *InMemoryKVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
