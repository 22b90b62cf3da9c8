package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pathwise/pathwise/pkg/domain"
)

// Store implements ports.BlobStore in memory. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates a new in-memory blob store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Save persists a copy of the blob.
func (s *Store) Save(ctx context.Context, key string, blob []byte) error {
	copied := make([]byte, len(blob))
	copy(copied, blob)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves a copy of the blob.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
	}
	copied := make([]byte, len(blob))
	copy(copied, blob)
	return copied, nil
}

// Delete removes the blob.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
