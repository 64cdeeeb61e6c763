package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/4Dmu/eat-authentically/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.RateLimiter = (*RateLimiter)(nil)

const limitPrefix = "ratelimit:"

// limitScript atomically increments the window counter and arms its
// expiry on first use. Returns the post-increment count.
var limitScript = redis.NewScript(`
	local current = redis.call("incr", KEYS[1])
	if current == 1 then
		redis.call("pexpire", KEYS[1], ARGV[1])
	end
	return current
`)

// RateLimiter implements a fixed-window counter limiter in Redis.
// The counter is shared by every process drawing on the same key, so
// it limits the downstream provider, not individual callers.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter creates a limiter allowing limit calls per window.
func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow draws one token for key. A denial is a normal outcome and
// resolves itself when the window rolls over.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	result, err := limitScript.Run(ctx, l.client, []string{limitPrefix + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return result.(int64) <= l.limit, nil
}
