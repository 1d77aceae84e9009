package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	InitRedisRateLimiter(mr.Addr(), "", 0)
	t.Cleanup(func() { redisClient = nil })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", RedisRateLimit(2, 2*time.Second), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < 2; i++ {
		res, err := http.Get(srv.URL + "/test")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()
	}

	res, err := http.Get(srv.URL + "/test")
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	res.Body.Close()

	// window expiry resets the counter
	mr.FastForward(3 * time.Second)
	res, err = http.Get(srv.URL + "/test")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()
}

func TestRedisRateLimitFailOpen(t *testing.T) {
	redisClient = nil

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", RedisRateLimit(1, time.Second), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	// with no Redis configured every request passes
	for i := 0; i < 5; i++ {
		res, err := http.Get(srv.URL + "/test")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()
	}
}
