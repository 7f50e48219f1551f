package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPLimitersRefillAndExpire(t *testing.T) {
	l := &ipLimiters{
		limiters: map[string]*rateLimiter{},
		limit:    rate.Every(time.Minute),
		burst:    1,
	}
	now := time.Now()

	assert.True(t, l.allow("1.1.1.1", now))
	assert.False(t, l.allow("1.1.1.1", now))
	assert.True(t, l.allow("2.2.2.2", now), "buckets are per key")
	assert.True(t, l.allow("1.1.1.1", now.Add(time.Minute)), "bucket refills")

	l.allow("3.3.3.3", now.Add(time.Minute+limiterIdleTTL+time.Second))
	assert.Len(t, l.limiters, 1, "idle buckets are dropped")
}

func TestIPLimitersSweepAtMostOncePerInterval(t *testing.T) {
	l := &ipLimiters{
		limiters: map[string]*rateLimiter{},
		limit:    rate.Every(time.Minute),
		burst:    1,
	}
	now := time.Now()

	l.allow("1.1.1.1", now)
	l.limiters["1.1.1.1"].expires = now

	l.allow("2.2.2.2", now.Add(time.Second))
	assert.Len(t, l.limiters, 2, "no sweep inside the interval")

	l.allow("3.3.3.3", now.Add(limiterSweepInterval))
	assert.Len(t, l.limiters, 2)
	assert.NotContains(t, l.limiters, "1.1.1.1")
}

func TestRateLimitDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RateLimit(-1), func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}
