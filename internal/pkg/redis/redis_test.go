package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connect skips unless STOREFRONT_TEST_REDIS points at a reachable server.
func connect(t *testing.T) *Client {
	t.Helper()
	url := os.Getenv("STOREFRONT_TEST_REDIS")
	if url == "" {
		t.Skip("STOREFRONT_TEST_REDIS not set")
	}
	c, err := Connect(context.Background(), url)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestAllow(t *testing.T) {
	c := connect(t)
	ctx := context.Background()
	key := "test-" + uuid.NewString()

	for i := 0; i < 3; i++ {
		ok, err := c.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := c.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClaimAndSettle(t *testing.T) {
	c := connect(t)
	ctx := context.Background()
	key := "test-" + uuid.NewString()

	ok, _, err := c.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, state, err := c.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "pending", state)

	require.NoError(t, c.Settle(ctx, key, false))
	ok, _, err = c.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Settle(ctx, key, true))
	_, state, err = c.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "done", state)
}
