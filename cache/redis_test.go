package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		RedisClient.Close()
		RedisClient = nil
	})
	return mr
}

func TestSetGetRoundTrip(t *testing.T) {
	startRedis(t)

	type payload struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	require.NoError(t, Set("test:key", payload{Name: "Portal 2", Price: 9.99}, time.Minute))

	var got payload
	require.NoError(t, Get("test:key", &got))
	assert.Equal(t, "Portal 2", got.Name)
	assert.Equal(t, 9.99, got.Price)
}

func TestGetMiss(t *testing.T) {
	startRedis(t)

	var dest map[string]interface{}
	err := Get("missing:key", &dest)
	assert.Error(t, err)
}

func TestCheckRateLimit(t *testing.T) {
	startRedis(t)

	const userID = 42

	// First request opens the window.
	allowed, remaining, err := CheckRateLimit(userID, 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	// Second request exhausts the limit.
	allowed, remaining, err = CheckRateLimit(userID, 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	// Exceeding the window is not an error, just not allowed.
	allowed, _, err = CheckRateLimit(userID, 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCheckRateLimitWindowExpiry(t *testing.T) {
	mr := startRedis(t)

	const userID = 7

	allowed, _, err := CheckRateLimit(userID, 1, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = CheckRateLimit(userID, 1, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	mr.FastForward(time.Minute + time.Second)

	allowed, _, err = CheckRateLimit(userID, 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "a fresh window starts once the key expires")
}

func TestResetRateLimit(t *testing.T) {
	startRedis(t)

	const userID = 9

	_, _, err := CheckRateLimit(userID, 1, time.Minute)
	require.NoError(t, err)
	allowed, _, err := CheckRateLimit(userID, 1, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, ResetRateLimit(userID))

	allowed, _, err = CheckRateLimit(userID, 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimitWithoutRedis(t *testing.T) {
	RedisClient = nil

	allowed, remaining, err := CheckRateLimit(1, 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 5, remaining)
}
