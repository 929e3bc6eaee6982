package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"resto-backoffice/internal/models"
)

// keyTTL bounds how long a claimed key blocks replays
const keyTTL = 24 * time.Hour

// Store deduplicates caller-supplied idempotency keys through Redis.
// A nil Store (Redis not configured) accepts every key.
type Store struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection
func New(ctx context.Context, addr string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

// Claim reserves key for the current request. A key already claimed within
// the TTL fails with ConflictError so a client resubmission does not create
// a second order.
func (s *Store) Claim(ctx context.Context, key string) error {
	if s == nil || key == "" {
		return nil
	}

	ok, err := s.rdb.SetNX(ctx, "idempotency:"+key, "claimed", keyTTL).Result()
	if err != nil {
		return models.PersistenceError(err)
	}
	if !ok {
		return models.ConflictError{Resource: "order", Detail: "idempotency key already used"}
	}
	return nil
}

// Release frees a claimed key so a failed request can be retried with the
// same key.
func (s *Store) Release(ctx context.Context, key string) {
	if s == nil || key == "" {
		return
	}
	s.rdb.Del(ctx, "idempotency:"+key)
}

// Ping reports Redis health
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.rdb.Ping(ctx).Err()
}

// Close closes the Redis client
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.rdb.Close()
}
