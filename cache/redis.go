package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pageKeyPrefix = "pages:"

// RedisPageCache implements PageCache backed by Redis.
type RedisPageCache struct {
	client *redis.Client
}

func NewRedisPageCache(addr, password string, db int) (*RedisPageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisPageCache{client: client}, nil
}

func pageKey(key string) string {
	return pageKeyPrefix + key
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, pageKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get page: %w", err)
	}
	return body, true, nil
}

func (c *RedisPageCache) SetWithTTL(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, pageKey(key), body, ttl).Err(); err != nil {
		return fmt.Errorf("redis set page: %w", err)
	}
	return nil
}

// Clear drops all cached pages. SCAN keeps this safe against large keyspaces
// shared with other tenants of the same Redis database.
func (c *RedisPageCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, pageKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis clear pages: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan pages: %w", err)
	}
	return nil
}

func (c *RedisPageCache) Close() error {
	return c.client.Close()
}

var _ PageCache = (*RedisPageCache)(nil)
