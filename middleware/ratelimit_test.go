package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"steamlytics/cache"
)

func rateLimitedRouter(t *testing.T, maxRequests int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	cache.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.RedisClient.Close()
		cache.RedisClient = nil
	})

	r := gin.New()
	r.POST("/chat", RateLimitMiddleware(maxRequests, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitMiddlewareBlocksAfterLimit(t *testing.T) {
	r := rateLimitedRouter(t, 1)

	var codes []int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddlewareSetsHeaders(t *testing.T) {
	r := rateLimitedRouter(t, 5)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, time.Minute.String(), w.Header().Get("X-RateLimit-Window"))
}

func TestRateLimitMiddlewarePassesThroughWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cache.RedisClient = nil

	r := gin.New()
	r.POST("/chat", RateLimitMiddleware(1, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
