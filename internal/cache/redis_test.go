// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniRedis creates a test Redis server using miniredis.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := &RedisCache{
		client: client,
		logger: zerolog.Nop(),
	}

	return mr, cache
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	defer mr.Close()

	cache.Set("test-key", "test-value", 5*time.Minute)

	val, found := cache.Get("test-key")
	require.True(t, found)
	assert.Equal(t, "test-value", val)

	stats := cache.Stats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Sets)
}

func TestRedisCache_GetMissing(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	defer mr.Close()

	_, found := cache.Get("never-set")
	assert.False(t, found)
	assert.EqualValues(t, 1, cache.Stats().Misses)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	defer mr.Close()

	cache.Set("short", "value", 50*time.Millisecond)

	// miniredis needs explicit clock advancement
	mr.FastForward(100 * time.Millisecond)

	_, found := cache.Get("short")
	assert.False(t, found)
}

func TestRedisCache_Delete(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	defer mr.Close()

	cache.Set("a", 1.0, time.Minute)
	cache.Delete("a")

	_, found := cache.Get("a")
	assert.False(t, found)
}

func TestRedisCache_Clear(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	defer mr.Close()

	cache.Set("a", 1.0, time.Minute)
	cache.Set("b", 2.0, time.Minute)
	cache.Clear()

	assert.Equal(t, 0, cache.Stats().CurrentSize)
}

func TestRedisCache_StructuredValues(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	defer mr.Close()

	cache.Set("doc", map[string]any{"confidence_threshold": 0.5}, time.Minute)

	val, found := cache.Get("doc")
	require.True(t, found)

	m, ok := val.(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.5, m["confidence_threshold"], 1e-9)
}

func TestRedisCache_HealthCheck(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	defer mr.Close()

	assert.NoError(t, cache.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, cache.HealthCheck(context.Background()))
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	_, err := NewRedisCache(RedisConfig{Addr: "127.0.0.1:1"}, zerolog.Nop())
	assert.Error(t, err)
}
