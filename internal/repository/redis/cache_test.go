package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(context.Background(), "http://not-redis", time.Minute)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing redis url")
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := New(ctx, "redis://127.0.0.1:1/0", time.Minute)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to redis")
}

func TestUnreachableRedisIsAMiss(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewWithClient(client, "test:", time.Minute)
	defer c.Close()
	ctx := context.Background()

	assert.NotPanics(t, func() { c.Put(ctx, "k", []byte("v")) })
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestKeyPrefix(t *testing.T) {
	c := NewWithClient(nil, DefaultPrefix, time.Minute)

	assert.Equal(t, "gridiron:espn:https://espn.test/scoreboard", c.key("https://espn.test/scoreboard"))
}
