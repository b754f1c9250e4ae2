package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret        = errors.New("token: signing secret is required")
	ErrUnsupportedAlgorithm = errors.New("token: unsupported signing algorithm")
	ErrInvalidTTL           = errors.New("token: ttl must be positive")
)

// Config is the immutable signing configuration shared by Issuer and
// Verifier. Build it once at startup with NewConfig.
type Config struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	issuer string
}

// NewConfig validates the signing parameters. Only HMAC algorithms
// (HS256, HS384, HS512) are accepted.
func NewConfig(secret, algorithm string, ttl time.Duration, issuer string) (Config, error) {
	if secret == "" {
		return Config{}, ErrMissingSecret
	}

	alg := strings.ToUpper(strings.TrimSpace(algorithm))
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}

	if ttl <= 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidTTL, ttl)
	}

	return Config{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		issuer: strings.TrimSpace(issuer),
	}, nil
}

// Algorithm returns the JWT alg identifier, e.g. "HS256".
func (c Config) Algorithm() string { return c.method.Alg() }

// TTL returns the lifetime of issued tokens.
func (c Config) TTL() time.Duration { return c.ttl }
