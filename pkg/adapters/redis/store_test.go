package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pathwise/pathwise/pkg/domain"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*backend.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestStoreRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewStoreFromClient(client, WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "evidence:p1", []byte(`{"v":1}`)))

	blob, err := store.Load(ctx, "evidence:p1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), blob)

	require.NoError(t, store.Delete(ctx, "evidence:p1"))
	_, err = store.Load(ctx, "evidence:p1")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreMissingKey(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewStoreFromClient(client)

	_, err := store.Load(context.Background(), "never-written")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreTTL(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewStoreFromClient(client, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "evidence:p1", []byte("x")))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "evidence:p1")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestQueueEnqueue(t *testing.T) {
	client, mr := newTestClient(t)
	queue := NewQueueFromClient(client, WithQueueKey("test:outbound"))
	ctx := context.Background()

	event := domain.SyncEvent{
		Type:      domain.EventSkillSummary,
		UserID:    "p1",
		Payload:   map[string]any{"skill": "collaboration", "count": 3},
		Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, queue.Enqueue(ctx, event))
	require.NoError(t, queue.Enqueue(ctx, event))

	n, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	raw, err := mr.Lpop("test:outbound")
	require.NoError(t, err)
	var decoded domain.SyncEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, domain.EventSkillSummary, decoded.Type)
	assert.Equal(t, "p1", decoded.UserID)
}
