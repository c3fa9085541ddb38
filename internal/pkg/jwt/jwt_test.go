package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	m, err := New("s3cret", time.Hour)
	require.NoError(t, err)

	token, expires, err := m.Sign("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}

func TestParseRejects(t *testing.T) {
	m, err := New("s3cret", time.Hour)
	require.NoError(t, err)
	other, err := New("different", time.Hour)
	require.NoError(t, err)

	token, _, err := other.Sign("admin")
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	m, err := New("s3cret", time.Minute)
	require.NoError(t, err)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.Sign("admin")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("  ", time.Hour)
	assert.Error(t, err)

	m, err := New("x", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultTTL, m.TTL())
}
