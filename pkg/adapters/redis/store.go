// Package redis provides Redis-backed adapters: a BlobStore for session and
// evidence blobs and an outbound SyncQueue backed by a Redis list.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pathwise/pathwise/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.BlobStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL sets the expiration for stored blobs. Zero means no expiration.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// NewStore creates a Redis blob store with its own client.
func NewStore(address, password string, db int, opts ...StoreOption) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewStoreFromClient(client, opts...)
}

// NewStoreFromClient creates a Redis blob store from an existing client.
func NewStoreFromClient(client *backend.Client, opts ...StoreOption) *Store {
	store := &Store{
		client: client,
		prefix: "pathwise:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Save persists the blob.
func (s *Store) Save(ctx context.Context, key string, blob []byte) error {
	if err := s.client.Set(ctx, s.key(key), blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the blob.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// Delete removes the blob.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
