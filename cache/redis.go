package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis initializes Redis connection
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisURL,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(pingCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// CloseRedis closes Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisAvailable checks if Redis is connected
func IsRedisAvailable() bool {
	if RedisClient == nil {
		return false
	}
	_, err := RedisClient.Ping(ctx).Result()
	return err == nil
}

// ==================== CACHE KEYS ====================

const (
	// Computed analytics artifacts
	GamesAnalysisKey = "analytics:games"
	UserAnalysisKey  = "analytics:users"
	MetricsKey       = "analytics:metrics"
	TopGamesPrefix   = "analytics:topgames:" // analytics:topgames:5
	DataSummaryKey   = "analytics:summary"

	// Rate limiting
	RateLimitPrefix = "ratelimit:user:" // ratelimit:user:123
)

// Analytics artifacts are derived from a dataset that only changes on an
// explicit refresh, so a short TTL plus invalidation on refresh is enough.
const analyticsTTL = 5 * time.Minute

// ==================== GENERIC CACHE OPERATIONS ====================

// Set stores any value in cache with TTL
func Set(key string, value interface{}, ttl time.Duration) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// Get retrieves value from cache
func Get(key string, dest interface{}) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}

	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("cache miss")
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes key from cache
func Delete(key string) error {
	if !IsRedisAvailable() {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}

// DeletePattern removes all keys matching pattern
func DeletePattern(pattern string) error {
	if !IsRedisAvailable() {
		return nil
	}

	iter := RedisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// ==================== ANALYTICS CACHING ====================

// SetGamesAnalysis caches the games dashboard block.
func SetGamesAnalysis(analysis interface{}) error {
	return Set(GamesAnalysisKey, analysis, analyticsTTL)
}

// GetGamesAnalysis loads the cached games dashboard block into dest.
func GetGamesAnalysis(dest interface{}) error {
	return Get(GamesAnalysisKey, dest)
}

// SetUserAnalysis caches the user behavior block.
func SetUserAnalysis(analysis interface{}) error {
	return Set(UserAnalysisKey, analysis, analyticsTTL)
}

// GetUserAnalysis loads the cached user behavior block into dest.
func GetUserAnalysis(dest interface{}) error {
	return Get(UserAnalysisKey, dest)
}

// SetMetrics caches the headline metrics.
func SetMetrics(metrics interface{}) error {
	return Set(MetricsKey, metrics, analyticsTTL)
}

// GetMetrics loads the cached headline metrics into dest.
func GetMetrics(dest interface{}) error {
	return Get(MetricsKey, dest)
}

// SetTopGames caches a top-N ranking.
func SetTopGames(limit int, games interface{}) error {
	return Set(fmt.Sprintf("%s%d", TopGamesPrefix, limit), games, analyticsTTL)
}

// GetTopGames loads a cached top-N ranking into dest.
func GetTopGames(limit int, dest interface{}) error {
	return Get(fmt.Sprintf("%s%d", TopGamesPrefix, limit), dest)
}

// InvalidateAnalytics removes every cached analytics artifact. Called by
// the data refresh endpoint after a reload.
func InvalidateAnalytics() error {
	for _, key := range []string{GamesAnalysisKey, UserAnalysisKey, MetricsKey, DataSummaryKey} {
		if err := Delete(key); err != nil {
			return err
		}
	}
	return DeletePattern(TopGamesPrefix + "*")
}

// ==================== RATE LIMITING ====================

// CheckRateLimit implements fixed-window rate limiting per user
func CheckRateLimit(userID uint, maxRequests int, window time.Duration) (bool, int, error) {
	if !IsRedisAvailable() {
		return true, maxRequests, nil // Allow if Redis unavailable
	}

	key := fmt.Sprintf("%s%d", RateLimitPrefix, userID)

	count, err := RedisClient.Get(ctx, key).Int()
	if err == redis.Nil {
		// First request - initialize counter
		if err := RedisClient.Set(ctx, key, 1, window).Err(); err != nil {
			return false, 0, err
		}
		return true, maxRequests - 1, nil
	}
	if err != nil {
		return false, 0, err
	}

	if count >= maxRequests {
		// Exceeded is a normal outcome, not an error: callers treat a
		// non-nil error as a Redis failure and fail open.
		return false, 0, nil
	}

	newCount, err := RedisClient.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	return true, maxRequests - int(newCount), nil
}

// ResetRateLimit resets rate limit for a user
func ResetRateLimit(userID uint) error {
	key := fmt.Sprintf("%s%d", RateLimitPrefix, userID)
	return Delete(key)
}
