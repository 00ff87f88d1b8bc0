package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultPrefix = "gridiron:espn:"

// Cache keeps response bodies in Redis under a key prefix. Redis failures
// are logged and treated as misses.
type Cache struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// New connects to url and verifies the connection with a PING.
func New(ctx context.Context, url string, ttl time.Duration) (*Cache, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := goredis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return NewWithClient(client, DefaultPrefix, ttl), nil
}

func NewWithClient(client goredis.UniversalClient, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			slog.Warn("redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (c *Cache) Put(ctx context.Context, key string, value []byte) {
	if c.ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		slog.Warn("redis set failed", "key", key, "error", err)
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}
