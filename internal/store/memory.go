package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
)

// MemoryStorage is a process-local Storage. It is safe for concurrent use.
type MemoryStorage struct {
	items *cache.Cache
}

// NewMemoryStorage creates an empty MemoryStorage. Records never expire on
// their own; expiry is the snapshot cache's job.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items: cache.New(cache.NoExpiration, 0),
	}
}

// Get returns a copy of the record stored under key.
func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	raw, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("memory storage: unexpected value type %T for %q", v, key)
	}
	return bytes.Clone(raw), nil
}

// Set stores a copy of value under key.
func (s *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	s.items.Set(key, bytes.Clone(value), cache.NoExpiration)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}

var _ Storage = (*MemoryStorage)(nil)
