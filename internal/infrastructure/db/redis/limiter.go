package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const limiterPrefix = "ratelimit"

// FixedWindowLimiter counts hits per key in fixed windows.
// Key format: ratelimit:<scope>:<key>
type FixedWindowLimiter struct {
	client *redis.Client
	scope  string
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter allows up to limit hits per key in each window.
func NewFixedWindowLimiter(client *redis.Client, scope string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		client: client,
		scope:  scope,
		limit:  int64(limit),
		window: window,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
// INCR and EXPIRE NX run in one MULTI/EXEC on every hit: the first hit opens
// the window, and a counter left without a TTL picks one up on the next hit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

func (l *FixedWindowLimiter) key(key string) string {
	return fmt.Sprintf("%s:%s:%s", limiterPrefix, l.scope, key)
}
