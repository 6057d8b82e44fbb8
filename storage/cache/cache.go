// Package cache stores JSON values in redis, or nowhere when redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Nebras-project/nebras-dashboard/core"
)

type RedisCache struct {
	client *redis.Client
}

// New connects to redis; it returns a Nop cache when no address is configured
// or when redis does not answer.
func New(ctx context.Context, conf *core.Config, logger core.Logger) (Cache, func() error) {
	if conf.Redis.Address == "" {
		logger.Info("redis address not set: caching disabled")
		return Nop{}, func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Address,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("connecting to redis: "+err.Error(), err)
		_ = client.Close()
		return Nop{}, func() error { return nil }
	}
	return NewRedisCache(client), client.Close
}

// Cache matches overview.Cache.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = Nop{}
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "getting %s", key)
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return false, errors.Wrapf(err, "decoding %s", key)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	return errors.Wrapf(c.client.Set(ctx, key, data, ttl).Err(), "setting %s", key)
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return errors.Wrap(c.client.Del(ctx, keys...).Err(), "deleting keys")
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) (bool, error)          { return false, nil }
func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Nop) Delete(context.Context, ...string) error                       { return nil }
