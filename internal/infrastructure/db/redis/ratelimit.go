package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window attempt counter backed by Redis.
// Key format: ratelimit:<action>:<key>
type RateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
}

// NewRateLimiter wraps client with a limit of max attempts per window.
func NewRateLimiter(client *redis.Client, window time.Duration, max int) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 10
	}
	return &RateLimiter{client: client, window: window, max: int64(max)}
}

// Allow increments the counter for action/key and reports whether the
// attempt is still inside the limit. The window TTL is set on first use.
func (l *RateLimiter) Allow(ctx context.Context, action, key string) (bool, error) {
	k := l.key(action, key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.max, nil
}

func (l *RateLimiter) key(action, key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", action, key)
}
