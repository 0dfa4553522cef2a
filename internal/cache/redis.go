package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis so multiple server instances share one
// evaluation cache.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

// NewRedisCache connects a client to the given address. The connection is
// lazy; a misconfigured address surfaces as misses and Set errors.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

// Get returns the stored value, treating any Redis error as a miss.
func (r *RedisCache) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores the value with the configured TTL.
func (r *RedisCache) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, r.ttl).Err()
}
