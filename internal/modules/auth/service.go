package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/homeline/storefront/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Subject is the token subject issued to the single admin account.
const Subject = "admin"

var (
	ErrLoginDisabled = errors.New("admin login is not configured")
	ErrWrongPassword = errors.New("wrong password")
)

// Service checks the admin password and issues tokens.
type Service struct {
	hash      []byte
	tokens    *jwt.Manager
	failDelay time.Duration
}

// NewService compares logins against a bcrypt hash. An empty hash disables
// login entirely.
func NewService(passwordHash string, tokens *jwt.Manager) *Service {
	return &Service{
		hash:      []byte(strings.TrimSpace(passwordHash)),
		tokens:    tokens,
		failDelay: time.Second,
	}
}

// Enabled reports whether a password hash is configured.
func (s *Service) Enabled() bool { return len(s.hash) > 0 && s.tokens != nil }

// Login returns a signed token and its expiry for the right password.
func (s *Service) Login(password string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		time.Sleep(s.failDelay)
		return "", time.Time{}, ErrWrongPassword
	}
	return s.tokens.Sign(Subject)
}

// TTL is the lifetime of issued tokens.
func (s *Service) TTL() time.Duration {
	if s.tokens == nil {
		return 0
	}
	return s.tokens.TTL()
}
