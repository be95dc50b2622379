package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values as plain redis strings without expiry.
type RedisStore struct {
	c *redis.Client
}

func NewRedisStore(c *redis.Client) *RedisStore {
	return &RedisStore{c: c}
}

// OpenRedis parses a redis:// URL and returns a connected store.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return &RedisStore{c: c}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		observeGet("redis", false, nil)
		return "", false, nil
	}
	observeGet("redis", err == nil, err)
	if err != nil {
		return "", false, fmt.Errorf("getting %q: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	err := r.c.Set(ctx, key, value, 0).Err()
	observeSet("redis", err)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Check(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

func (r *RedisStore) Close() error { return r.c.Close() }
