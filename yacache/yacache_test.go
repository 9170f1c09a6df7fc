package yacache_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yacache"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *yacache.Redis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := yacache.NewRedis(client)

	t.Cleanup(func() {
		_ = cache.Close()
	})

	return mr, cache
}

func setupTestMemory(t *testing.T) *yacache.Memory {
	t.Helper()

	cache := yacache.NewMemory(time.Minute)

	t.Cleanup(func() {
		_ = cache.Close()
	})

	return cache
}

func backends(t *testing.T) map[string]yacache.Cache {
	t.Helper()

	_, redisCache := setupTestRedis(t)

	return map[string]yacache.Cache{
		"memory": setupTestMemory(t),
		"redis":  redisCache,
	}
}

func TestCache_Behaviour(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for name, cache := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("[Ping] works", func(t *testing.T) {
				assert.Nil(t, cache.Ping(ctx))
			})

			t.Run("[SetNX] only the first write wins", func(t *testing.T) {
				fresh, err := cache.SetNX(ctx, "update:1", "first", time.Hour)
				require.Nil(t, err)
				assert.True(t, fresh)

				fresh, err = cache.SetNX(ctx, "update:1", "second", time.Hour)
				require.Nil(t, err)
				assert.False(t, fresh)

				value, err := cache.Get(ctx, "update:1")
				require.Nil(t, err)
				assert.Equal(t, "first", value)
			})

			t.Run("[Set] overwrites", func(t *testing.T) {
				require.Nil(t, cache.Set(ctx, "journal:1", "a", 0))
				require.Nil(t, cache.Set(ctx, "journal:1", "b", 0))

				value, err := cache.Get(ctx, "journal:1")
				require.Nil(t, err)
				assert.Equal(t, "b", value)
			})

			t.Run("[Get] missing key", func(t *testing.T) {
				_, err := cache.Get(ctx, "missing")
				require.NotNil(t, err)
				assert.ErrorIs(t, err, yacache.ErrCacheKeyNotFound)
			})

			t.Run("[Exists] and [Del]", func(t *testing.T) {
				require.Nil(t, cache.Set(ctx, "k1", "v", 0))
				require.Nil(t, cache.Set(ctx, "k2", "v", 0))

				ok, err := cache.Exists(ctx, "k1", "k2")
				require.Nil(t, err)
				assert.True(t, ok)

				require.Nil(t, cache.Del(ctx, "k2"))
				require.Nil(t, cache.Del(ctx, "k2"))

				ok, err = cache.Exists(ctx, "k1", "k2")
				require.Nil(t, err)
				assert.False(t, ok)
			})
		})
	}
}

func TestMemory_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := setupTestMemory(t)

	require.Nil(t, cache.Set(ctx, "short", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := cache.Get(ctx, "short")
	assert.ErrorIs(t, err, yacache.ErrCacheKeyNotFound)

	fresh, err := cache.SetNX(ctx, "short", "again", time.Hour)
	require.Nil(t, err)
	assert.True(t, fresh)
}

func TestMemory_Sweeper(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	cache := yacache.NewMemory(5 * time.Millisecond)
	defer cache.Close()

	require.Nil(t, cache.Set(ctx, "short", "v", time.Millisecond))
	require.Nil(t, cache.Set(ctx, "long", "v", time.Hour))

	assert.Eventually(t, func() bool {
		return cache.Len() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestMemory_PingAfterClose(t *testing.T) {
	t.Parallel()

	cache := yacache.NewMemory(time.Minute)

	require.Nil(t, cache.Close())
	require.Nil(t, cache.Close())

	err := cache.Ping(context.Background())
	require.NotNil(t, err)
	assert.ErrorIs(t, err, yacache.ErrCacheClosed)
}

func TestRedis_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, cache := setupTestRedis(t)

	fresh, err := cache.SetNX(ctx, "update:7", "1", time.Minute)
	require.Nil(t, err)
	require.True(t, fresh)

	mr.FastForward(2 * time.Minute)

	fresh, err = cache.SetNX(ctx, "update:7", "1", time.Minute)
	require.Nil(t, err)
	assert.True(t, fresh)
}

func TestRedis_PingFailsWhenServerDown(t *testing.T) {
	t.Parallel()

	mr, cache := setupTestRedis(t)
	mr.Close()

	assert.NotNil(t, cache.Ping(context.Background()))
}

func TestNewRedisClient_Connects(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client, err := yacache.NewRedisClient(context.Background(), mr.Addr(), "", 0, nil)
	require.Nil(t, err)

	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewRedisClient_GivesUpWithContext(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	client, err := yacache.NewRedisClient(ctx, addr, "", 0, nil)
	require.NotNil(t, err)
	assert.Nil(t, client)
	assert.Equal(t, http.StatusServiceUnavailable, err.Code())
}
