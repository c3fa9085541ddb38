package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/pkg/jwt"
	"github.com/homeline/storefront/internal/pkg/response"
)

const (
	ContextKeyAdmin   = "admin"
	DefaultCookieName = "storefront_token"
)

// Tokens verifies admin tokens.
type Tokens interface {
	Parse(token string) (*jwt.Claims, error)
}

// Gate resolves the admin token from a request.
type Gate struct {
	tokens Tokens
	cookie string
}

// NewGate reads tokens from the Authorization header or the named cookie.
func NewGate(tokens Tokens, cookieName string) *Gate {
	if strings.TrimSpace(cookieName) == "" {
		cookieName = DefaultCookieName
	}
	return &Gate{tokens: tokens, cookie: cookieName}
}

// CookieName returns the cookie carrying the admin token.
func (g *Gate) CookieName() string { return g.cookie }

// Auth rejects requests without a valid admin token.
func (g *Gate) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := g.Validate(g.extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyAdmin, claims.Subject)
		c.Next()
	}
}

// OptionalAuth marks the request as admin when a valid token is present but
// never blocks it.
func (g *Gate) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := g.Validate(g.extractToken(c)); err == nil {
			c.Set(ContextKeyAdmin, claims.Subject)
		}
		c.Next()
	}
}

// Validate checks a raw token, with or without the Bearer prefix.
func (g *Gate) Validate(raw string) (*jwt.Claims, error) {
	token := NormalizeToken(raw)
	if token == "" {
		return nil, errors.New("token is required")
	}
	return g.tokens.Parse(token)
}

// IsAdmin reports whether an auth middleware accepted the request's token.
func IsAdmin(c *gin.Context) bool {
	v, _ := c.Get(ContextKeyAdmin)
	subject, _ := v.(string)
	return subject != ""
}

func (g *Gate) extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	if raw, err := c.Cookie(g.cookie); err == nil {
		return NormalizeToken(raw)
	}
	return ""
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
