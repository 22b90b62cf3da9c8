package ports

import "context"

// BlobStore is the external key-value persistence collaborator. The core
// treats stored values as opaque blobs; the only format requirement is that
// they round-trip losslessly.
//
// Load returns domain.ErrKeyNotFound (possibly wrapped) for keys that have
// never been written; callers must tolerate absence.
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}
