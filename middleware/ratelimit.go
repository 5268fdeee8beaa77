package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"steamlytics/cache"
	"steamlytics/models"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware implements per-user rate limiting using Redis.
// Unauthenticated clients fall back to IP-based limiting.
func RateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting if Redis is not available
		if !cache.IsRedisAvailable() {
			c.Next()
			return
		}

		var userID uint
		if user, exists := c.Get("user"); exists {
			if u, ok := user.(models.User); ok {
				userID = u.ID
			}
		}

		if userID == 0 {
			userID = hashIP(c.ClientIP())
		}

		allowed, remaining, err := cache.CheckRateLimit(userID, maxRequests, window)
		if err != nil {
			// Redis hiccup, let the request through
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Window", window.String())

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": fmt.Sprintf("Too many requests. Retry after %v", window),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// hashIP converts IP to a simple numeric ID for caching
func hashIP(ip string) uint {
	hash := uint(0)
	for _, c := range ip {
		hash = hash*31 + uint(c)
	}
	return hash
}
