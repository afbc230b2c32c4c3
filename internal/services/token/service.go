package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/playerhub-go/internal/dependencies/clock"
	"github.com/mcoot/playerhub-go/internal/dependencies/random"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

const (
	jtiLength   = 16
	jtiAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Service issues and verifies signed bearer tokens. Tokens are
// stateless: validity depends only on the signature and the expiry
// claim, so there is nothing to revoke server-side.
type Service struct {
	clock  clock.Clock
	random random.Random

	signingKey []byte
	ttl        time.Duration
}

// Config holds configuration for the token service
type Config struct {
	// SigningKey is the HMAC secret shared by every instance that verifies tokens
	SigningKey string
	// TTL is how long issued tokens remain valid
	TTL time.Duration
}

// DefaultConfig returns default token configuration
func DefaultConfig() Config {
	return Config{
		TTL: 30 * time.Minute,
	}
}

// New creates a new token Service
func New(clock clock.Clock, random random.Random, cfg Config) *Service {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Service{
		clock:      clock,
		random:     random,
		signingKey: []byte(cfg.SigningKey),
		ttl:        cfg.TTL,
	}
}

// Issue creates a signed token for the given subject
func (s *Service) Issue(subject string) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        s.random.String(jtiLength, jtiAlphabet),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Verify checks a token's signature and expiry and returns its subject.
// Malformed, tampered, and expired tokens all fail with ErrInvalidToken.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *Service) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return s.signingKey, nil
}
