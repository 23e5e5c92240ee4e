package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Cache backed by a Redis server
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr. Entries expire after ttl; zero keeps them.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithOptions(&redis.Options{Addr: addr}, ttl)
}

// NewRedisCacheWithOptions allows full control over the client
func NewRedisCacheWithOptions(opts *redis.Options, ttl time.Duration) *RedisCache {
	return &RedisCache{client: redis.NewClient(opts), ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Ping checks the connection
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
