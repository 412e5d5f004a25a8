package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/config"
)

// RateLimiter gates abuse-prone operations by a keyed counter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, rule config.RateLimitRule) (bool, error)
}

type redisRateLimiter struct {
	client *redis.Client
	cfg    config.RateLimitConfig
	logger *zap.Logger
}

// NewRedisRateLimiter creates a fixed-window limiter on Redis INCR/EXPIRE.
func NewRedisRateLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) RateLimiter {
	return &redisRateLimiter{client: client, cfg: cfg, logger: logger}
}

// Allow increments the window counter for key and reports whether the rule's
// limit is still respected. Redis failures fail open: an unavailable limiter
// must not take authentication down with it.
func (r *redisRateLimiter) Allow(ctx context.Context, key string, rule config.RateLimitRule) (bool, error) {
	if !r.cfg.Enabled || !rule.Enabled || rule.Limit <= 0 {
		return true, nil
	}

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rule.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Rate limit check failed, failing open",
			zap.String("key", key), zap.Error(err))
		return true, nil
	}

	return incr.Val() <= int64(rule.Limit), nil
}

// NewRedisClient opens a Redis connection and verifies it with a ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
