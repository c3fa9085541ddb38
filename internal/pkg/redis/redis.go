package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:"

// Client wraps go-redis for the counters and claims used by the HTTP layer.
type Client struct {
	rdb *redis.Client
}

// Connect creates a Redis client and verifies connectivity.
func Connect(ctx context.Context, url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Raw returns the underlying redis.Client for advanced usage.
func (c *Client) Raw() *redis.Client { return c.rdb }

// Close releases the connection pool.
func (c *Client) Close() error { return c.rdb.Close() }

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

// Allow counts one hit against key in a fixed window and reports whether the
// count is still within limit.
func (c *Client) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	bucket := time.Now().UnixNano() / int64(window)
	k := fmt.Sprintf("%srate:%s:%d", keyPrefix, key, bucket)

	count, err := c.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		c.rdb.PExpire(ctx, k, window+time.Second)
	}
	return count <= int64(limit), nil
}

// Claim marks key as in flight for ttl. It returns false with the current
// state ("pending" or "done") when the key is already claimed.
func (c *Client) Claim(ctx context.Context, key string, ttl time.Duration) (bool, string, error) {
	k := keyPrefix + "claim:" + key
	ok, err := c.rdb.SetNX(ctx, k, "pending", ttl).Result()
	if err != nil {
		return false, "", err
	}
	if ok {
		return true, "", nil
	}
	state, err := c.rdb.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		return c.Claim(ctx, key, ttl)
	}
	return false, state, err
}

// Settle records the outcome of a claim: success keeps the key until it
// expires, failure frees it for a retry.
func (c *Client) Settle(ctx context.Context, key string, success bool) error {
	k := keyPrefix + "claim:" + key
	if success {
		return c.rdb.Set(ctx, k, "done", redis.KeepTTL).Err()
	}
	return c.rdb.Del(ctx, k).Err()
}
