// Package file provides filesystem-backed adapters: a BlobStore that keeps
// one file per key and a GraphLoader that reads YAML story files.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pathwise/pathwise/pkg/domain"
)

// Store implements ports.BlobStore using the local filesystem. Keys are
// sanitized into file names under BasePath.
type Store struct {
	BasePath string
}

// NewStore creates a Store rooted at basePath. If basePath is empty it
// defaults to ".pathwise/state".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".pathwise", "state")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(key string) string {
	// Colons appear in namespaced keys ("evidence:player1") and are not
	// portable in file names.
	name := strings.ReplaceAll(key, ":", "_")
	return filepath.Join(s.BasePath, name+".json")
}

// Save writes the blob to disk.
func (s *Store) Save(ctx context.Context, key string, blob []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure state directory: %w", err)
	}
	if err := os.WriteFile(s.path(key), blob, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Load reads the blob from disk.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	blob, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return blob, nil
}

// Delete removes the blob file.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	return nil
}
