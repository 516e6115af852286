package event

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// idempotencyKeyPrefix namespaces processed-event markers in Redis.
const idempotencyKeyPrefix = "search:processed_event:"

// RedisIdempotencyStore marks processed event IDs in Redis so replayed
// messages are skipped across consumer restarts and instances. Keys expire
// after the configured TTL.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIdempotencyStore creates a Redis-backed idempotency store.
func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
		ttl:    ttl,
	}
}

// Contains reports whether the event ID has already been processed.
func (s *RedisIdempotencyStore) Contains(ctx context.Context, eventID string) (bool, error) {
	n, err := s.client.Exists(ctx, idempotencyKeyPrefix+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("check processed event %s: %w", eventID, err)
	}
	return n > 0, nil
}

// Add marks the event ID as processed.
func (s *RedisIdempotencyStore) Add(ctx context.Context, eventID string) error {
	if err := s.client.Set(ctx, idempotencyKeyPrefix+eventID, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("mark event %s processed: %w", eventID, err)
	}
	return nil
}
