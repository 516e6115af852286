package event

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisIdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisIdempotencyStore(client, ttl), mr
}

func TestRedisIdempotencyStore_AddAndContains(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	exists, err := store.Contains(ctx, "ev-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Add(ctx, "ev-1"))

	exists, err = store.Contains(ctx, "ev-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisIdempotencyStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "ev-1"))
	mr.FastForward(2 * time.Minute)

	exists, err := store.Contains(ctx, "ev-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisIdempotencyStore_KeysAreNamespaced(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)

	require.NoError(t, store.Add(context.Background(), "ev-1"))
	assert.True(t, mr.Exists("search:processed_event:ev-1"))
}

func TestRedisIdempotencyStore_ConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisIdempotencyStore(client, time.Hour)
	mr.Close()

	_, err := store.Contains(context.Background(), "ev-1")
	assert.Error(t, err)
	assert.Error(t, store.Add(context.Background(), "ev-1"))
}
