package ports

import (
	"time"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns false for a mismatch and for any malformed hash.
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs time-limited bearer tokens for a verified identity.
type TokenIssuer interface {
	Issue(user *domain.User, now time.Time) (string, error)
}

// TokenVerifier checks signature and expiry of a bearer token.
type TokenVerifier interface {
	Verify(token string, now time.Time) (domain.Claims, error)
}
