package ports

import (
	"context"

	"github.com/pathwise/pathwise/pkg/domain"
)

// SyncQueue is the outbound durable queue toward a remote sync system.
// The core emits discrete events and does not know how or when they are
// flushed. Enqueue failures are logged and dropped by the caller; they must
// never halt the narrative.
type SyncQueue interface {
	Enqueue(ctx context.Context, event domain.SyncEvent) error
}
