// Package cache holds the redis-backed payload cache consulted before each
// board fetch. It is optional; runs work without it.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baxromumarov/offer-sync/internal/logging"
)

const keyPrefix = "payload:"

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
	log *logging.Logger
}

// NewRedis parses redisURL, verifies connectivity and returns a cache whose
// entries expire after ttl.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration, log *logging.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{rdb: client, ttl: ttl, log: log}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return payload, true
}

func (r *Redis) Set(ctx context.Context, key string, payload []byte) {
	if err := r.rdb.Set(ctx, keyPrefix+key, payload, r.ttl).Err(); err != nil {
		r.log.Warn("cache write failed", "key", key, "error", err)
	}
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
