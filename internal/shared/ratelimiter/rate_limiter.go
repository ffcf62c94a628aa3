// Package ratelimiter limits repeated failed logins using Redis counters.
package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// failScript increments the counter and gives it a TTL in the same step.
// A counter left without a TTL gets one on the next failure.
var failScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// countScript reads the counter, repairing a missing TTL.
var countScript = redis.NewScript(`
local n = tonumber(redis.call('GET', KEYS[1]) or '0')
if n > 0 and redis.call('PTTL', KEYS[1]) == -1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// LoginLimiter counts failed attempts per key in fixed windows.
// A limiter without a Redis client allows everything.
type LoginLimiter struct {
	client *redis.Client
	limit  int           // ウィンドウあたりの失敗回数の上限
	window time.Duration // どの単位でリセットするか
	prefix string
}

// NewLoginLimiter creates a limiter allowing limit failures per window.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "rl:login",
	}
}

func (l *LoginLimiter) key(k string) string {
	return fmt.Sprintf("%s:%s", l.prefix, k)
}

// Blocked reports whether key has used up its failures for the current window.
// It does not count as an attempt. On Redis errors it returns false together
// with the error so callers can fail open.
func (l *LoginLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	if l.client == nil {
		return false, nil
	}

	k := l.key(key)
	cnt, err := countScript.Run(ctx, l.client, []string{k}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("count %s: %w", k, err)
	}
	return cnt >= int64(l.limit), nil
}

// Fail records a failed attempt for key.
func (l *LoginLimiter) Fail(ctx context.Context, key string) error {
	if l.client == nil {
		return nil
	}

	k := l.key(key)
	if err := failScript.Run(ctx, l.client, []string{k}, l.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("incr %s: %w", k, err)
	}
	return nil
}

// Reset clears the counter for key, typically after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if l.client == nil {
		return nil
	}
	return l.client.Del(ctx, l.key(key)).Err()
}
