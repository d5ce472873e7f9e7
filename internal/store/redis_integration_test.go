//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/book-pages-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisIntegration(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	s := store.NewRedis(client)

	t.Run("get missing key", func(t *testing.T) {
		_, found, err := s.Get(ctx, "test:"+uuid.NewString())

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set and get", func(t *testing.T) {
		key := "test:" + uuid.NewString()
		defer client.Del(ctx, key)

		require.NoError(t, s.Set(ctx, key, "1234"))

		value, found, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "1234", value)

		ttl, err := client.TTL(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(-1), ttl, "set must not attach an expiry")
	})

	t.Run("incr and expire", func(t *testing.T) {
		key := "test:" + uuid.NewString()
		defer client.Del(ctx, key)

		require.NoError(t, s.Set(ctx, key, "0"))
		require.NoError(t, s.Expire(ctx, key, 30*time.Second))

		count, err := s.Incr(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		ttl, err := client.TTL(ctx, key).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, 30*time.Second)
	})

	t.Run("incr on non-integer fails", func(t *testing.T) {
		key := "test:" + uuid.NewString()
		defer client.Del(ctx, key)

		require.NoError(t, s.Set(ctx, key, "abc"))

		_, err := s.Incr(ctx, key)
		assert.Error(t, err)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}
