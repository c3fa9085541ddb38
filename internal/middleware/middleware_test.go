package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() { gin.SetMode(gin.TestMode) }

func newGate(t *testing.T) (*Gate, *jwt.Manager) {
	t.Helper()
	m, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)
	return NewGate(m, ""), m
}

func TestAuth(t *testing.T) {
	gate, tokens := newGate(t)
	r := gin.New()
	r.GET("/admin", gate.Auth(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	token, _, err := tokens.Sign("admin")
	require.NoError(t, err)

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"none", func(*http.Request) {}, http.StatusUnauthorized},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: token}) }, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	gate, tokens := newGate(t)
	r := gin.New()
	r.GET("/", gate.OptionalAuth(), func(c *gin.Context) {
		if IsAdmin(c) {
			c.String(http.StatusOK, "admin")
			return
		}
		c.String(http.StatusOK, "guest")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "guest", w.Body.String())

	token, _, err := tokens.Sign("admin")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "admin", w.Body.String())
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken("  Bearer abc "))
	assert.Equal(t, "abc", NormalizeToken("bearer abc"))
	assert.Equal(t, "abc", NormalizeToken("abc"))
	assert.Equal(t, "", NormalizeToken("   "))
}

type memCounter struct {
	mu   sync.Mutex
	hits map[string]int
}

func (m *memCounter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hits == nil {
		m.hits = map[string]int{}
	}
	m.hits[key]++
	return m.hits[key] <= limit, nil
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/contact", RateLimit(&memCounter{}, "contact", 2, time.Minute, nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.POST("/contact", RateLimit(nil, "contact", 1, time.Minute, nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

type memClaimer struct {
	mu     sync.Mutex
	claims map[string]string
}

func (m *memClaimer) Claim(_ context.Context, key string, _ time.Duration) (bool, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claims == nil {
		m.claims = map[string]string{}
	}
	if state, ok := m.claims[key]; ok {
		return false, state, nil
	}
	m.claims[key] = "pending"
	return true, "", nil
}

func (m *memClaimer) Settle(_ context.Context, key string, success bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.claims[key] = "done"
	} else {
		delete(m.claims, key)
	}
	return nil
}

func TestIdempotence(t *testing.T) {
	status := http.StatusCreated
	r := gin.New()
	r.POST("/contact", Idempotence(&memClaimer{}), func(c *gin.Context) { c.Status(status) })

	post := func(body string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body)))
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, post(`{"a":1}`))
	assert.Equal(t, http.StatusConflict, post(`{"a":1}`))
	assert.Equal(t, http.StatusCreated, post(`{"a":2}`))

	status = http.StatusUnprocessableEntity
	assert.Equal(t, http.StatusUnprocessableEntity, post(`{"a":3}`))
	assert.Equal(t, http.StatusUnprocessableEntity, post(`{"a":3}`), "failed requests may be retried")
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, "/ping", entry.ContextMap()["path"])
	assert.EqualValues(t, http.StatusOK, entry.ContextMap()["status"])
}
