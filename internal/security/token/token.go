// Package token issues and verifies the stateless bearer tokens used for
// API access. Tokens are HMAC-signed JWTs carrying the username and role.
//
// Verification fails in a fixed order, each step with its own error:
// malformed encoding, bad signature, expiry, missing claims.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

type accessClaims struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs access tokens.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue returns a token for user that expires at now + TTL.
func (i *Issuer) Issue(user *domain.User, now time.Time) (string, error) {
	claims := accessClaims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.cfg.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(i.cfg.method, claims).SignedString(i.cfg.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verifier validates access tokens.
type Verifier struct {
	cfg Config
}

func NewVerifier(cfg Config) *Verifier {
	return &Verifier{cfg: cfg}
}

// Verify checks raw against the configured secret and algorithm as of now.
// Errors are one of the domain.ErrToken* sentinels.
func (v *Verifier) Verify(raw string, now time.Time) (domain.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.cfg.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	}
	if v.cfg.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.issuer))
	}

	var claims accessClaims
	_, err := jwt.NewParser(opts...).ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.cfg.secret, nil
	})
	if err != nil {
		return domain.Claims{}, classify(err)
	}

	if claims.Username == "" || claims.Role == "" {
		return domain.Claims{}, domain.ErrTokenMissingClaims
	}

	out := domain.Claims{
		Username: claims.Username,
		Role:     domain.Role(claims.Role),
		TokenID:  claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// classify maps jwt parser errors onto the domain token errors. Anything
// unrecognised is reported as malformed.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrTokenBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		// A foreign issuer is treated like an absent iss claim.
		return domain.ErrTokenMissingClaims
	default:
		return domain.ErrTokenMalformed
	}
}
