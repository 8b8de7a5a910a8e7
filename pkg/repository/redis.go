package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/giftstore/pkg/config"
	"github.com/go-redis/redis/v8"
)

// RedisCache fronts catalog reads with a short-lived JSON cache. It is an
// optional accelerator: every caller must treat cache errors as misses.
type RedisCache struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisCache(cfg *config.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		config: cfg,
	}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ttl := r.config.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
