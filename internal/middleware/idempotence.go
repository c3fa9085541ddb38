package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	idempotenceHeader = "X-Idempotence-Key"
	idempotenceTTL    = 60 * time.Second
)

// Claimer records in-flight and completed requests; *redis.Client
// implements it.
type Claimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, string, error)
	Settle(ctx context.Context, key string, success bool) error
}

// Idempotence rejects a repeated submission of the same request within a
// minute. The key is the X-Idempotence-Key header, or a hash of the method,
// URL, body, user agent and client IP. A nil claimer disables it.
func Idempotence(claimer Claimer) gin.HandlerFunc {
	if claimer == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		key, err := resolveIdempotenceKey(c)
		if err != nil || key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		ok, state, err := claimer.Claim(ctx, key, idempotenceTTL)
		if err != nil {
			c.Next()
			return
		}
		if !ok {
			msg := "this request was already submitted"
			if state == "pending" {
				msg = "this request is still being processed"
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok":      0,
				"code":    http.StatusConflict,
				"message": msg,
			})
			return
		}

		c.Next()

		status := c.Writer.Status()
		_ = claimer.Settle(ctx, key, status >= 200 && status < 300)
	}
}

func resolveIdempotenceKey(c *gin.Context) (string, error) {
	if hdr := c.GetHeader(idempotenceHeader); hdr != "" {
		return hdr, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return "", nil
	}

	raw := c.Request.Method + "|" + c.Request.URL.String() + "|" + string(body) + "|" + c.Request.UserAgent() + "|" + c.ClientIP()
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:]), nil
}
