package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/pkg/response"
	"go.uber.org/zap"
)

// Counter counts hits in a fixed window; *redis.Client implements it.
type Counter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit allows limit requests per client IP per window for the routes it
// wraps. A nil counter or a non-positive limit disables it, and counter
// errors let the request through. Admin requests are never limited.
func RateLimit(counter Counter, name string, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if counter == nil || limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if IsAdmin(c) {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ok, err := counter.Allow(c.Request.Context(), name+":"+ip, limit, window)
		if err != nil {
			log.Warn("rate limit counter unavailable", zap.String("limiter", name), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.TooManyRequests(c, "too many requests, try again later")
			return
		}
		c.Next()
	}
}
