package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a shared fixed-window counter for multi-instance
// deployments. Errors fail open: the limiter is advisory and must not
// take the public endpoints down with redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedisStore creates a redis-backed store allowing limit requests
// per key per window. The prefix keeps independent limiters (apply,
// click) from sharing counters.
func NewRedisStore(client *redis.Client, prefix string, limit int, window time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow consumes one slot for key.
func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", s.prefix, key)

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, fmt.Errorf("ratelimit incr: %w", err)
	}

	// First hit in this window starts the expiry clock.
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, s.window).Err(); err != nil {
			return true, fmt.Errorf("ratelimit expire: %w", err)
		}
	}

	return count <= int64(s.limit), nil
}
