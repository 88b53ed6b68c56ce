package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is a process-local Store. Values are JSON round-tripped so it
// behaves like the Redis store for callers.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites makes every mutating call fail with ErrWrite.
	FailWrites bool
	// FailReads makes Get and Keys fail with ErrRead.
	FailReads bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	s.mu.RLock()
	data, ok := s.data[key]
	failReads := s.FailReads
	s.mu.RUnlock()
	if failReads {
		return false, fmt.Errorf("%w: get %s", ErrRead, key)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrRead, key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrWrite, key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("%w: set %s", ErrWrite, key)
	}
	s.data[key] = data
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("%w: remove %s", ErrWrite, key)
	}
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("%w: clear", ErrWrite)
	}
	s.data = make(map[string][]byte)
	return nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads {
		return nil, fmt.Errorf("%w: keys", ErrRead)
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
