package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	// Plain HTTP request: no HSTS header
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestHashIPIsStable(t *testing.T) {
	a := hashIP("192.168.1.10")
	b := hashIP("192.168.1.10")
	c := hashIP("192.168.1.11")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
