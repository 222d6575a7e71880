package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func pingFrom(router *gin.Engine, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	// Refill slow enough that the bucket cannot recover mid-test.
	rl := NewRateLimiter(0.0001, 2)
	router := limitedRouter(rl)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, pingFrom(router, "10.0.0.1:5000").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := pingFrom(router, "10.0.0.1:5000")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error": "rate limit exceeded"}`, w.Body.String())
}

func TestRateLimiterTracksClientsIndependently(t *testing.T) {
	rl := NewRateLimiter(0.0001, 1)
	router := limitedRouter(rl)

	assert.Equal(t, http.StatusOK, pingFrom(router, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(router, "10.0.0.1:5000").Code)

	// A different client keeps its own bucket.
	assert.Equal(t, http.StatusOK, pingFrom(router, "10.0.0.2:5000").Code)
}
