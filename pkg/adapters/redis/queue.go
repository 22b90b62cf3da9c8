package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pathwise/pathwise/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Queue implements ports.SyncQueue as a Redis list. Events are RPUSHed as
// JSON; a separate worker (out of scope here) drains the list toward the
// remote sync system.
type Queue struct {
	client *backend.Client
	key    string
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueKey overrides the list key.
func WithQueueKey(key string) QueueOption {
	return func(q *Queue) {
		q.key = key
	}
}

// NewQueueFromClient creates a queue on an existing client.
func NewQueueFromClient(client *backend.Client, opts ...QueueOption) *Queue {
	q := &Queue{
		client: client,
		key:    "pathwise:sync:outbound",
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends the event to the outbound list.
func (q *Queue) Enqueue(ctx context.Context, event domain.SyncEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal sync event: %w", err)
	}
	if err := q.client.RPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue sync event: %w", err)
	}
	return nil
}

// Len reports the number of pending events.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
