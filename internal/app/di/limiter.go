package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"message_backend/internal/config"
	platformredis "message_backend/internal/platform/redis"
	"message_backend/internal/shared/ratelimiter"
)

// NewLoginLimiter builds the login attempt limiter.
// Without a reachable Redis the limiter allows every attempt and the returned client is nil.
func NewLoginLimiter(ctx context.Context, cfg config.Config) (*ratelimiter.LoginLimiter, *redis.Client) {
	var rdb *redis.Client
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set. Login attempt limiting disabled.")
	} else if client, err := platformredis.NewRedisClient(ctx, cfg.RedisURL); err != nil {
		slog.Warn("Redis unavailable. Login attempt limiting disabled.", "error", err)
	} else {
		rdb = client
	}
	return ratelimiter.NewLoginLimiter(rdb, cfg.LoginAttemptsPerWindow, cfg.LoginAttemptWindow), rdb
}
