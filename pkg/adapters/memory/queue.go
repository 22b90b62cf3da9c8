package memory

import (
	"context"
	"sync"

	"github.com/pathwise/pathwise/pkg/domain"
)

// Queue implements ports.SyncQueue by accumulating events in memory.
// Useful for tests and for hosts that drain events themselves.
type Queue struct {
	mu     sync.Mutex
	events []domain.SyncEvent
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends the event.
func (q *Queue) Enqueue(ctx context.Context, event domain.SyncEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, event)
	return nil
}

// Events returns a snapshot of everything enqueued so far, in order.
func (q *Queue) Events() []domain.SyncEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.SyncEvent, len(q.events))
	copy(out, q.events)
	return out
}
