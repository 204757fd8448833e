package breed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "spycats:breeds"

var _ Cache = (*RedisCache)(nil)

// RedisCache shares the breed list between API replicas.
type RedisCache struct {
	client *redis.Client
	key    string
}

func NewRedisCache(client *redis.Client, key string) *RedisCache {
	if key == "" {
		key = DefaultRedisKey
	}

	return &RedisCache{client: client, key: key}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

func (c *RedisCache) Get(ctx context.Context) ([]string, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("getting %s: %w", c.key, err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", c.key, err)
	}

	return names, true, nil
}

func (c *RedisCache) Set(ctx context.Context, names []string, ttl time.Duration) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encoding breeds: %w", err)
	}

	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", c.key, err)
	}

	return nil
}
