package service

import (
	"fmt"
	"time"

	"github.com/HapppyEnd/api-server/internal/core/domain"
	"github.com/HapppyEnd/api-server/internal/core/ports"
)

// AccessGuard gates protected operations on a bearer token and a role.
// It holds no per-request state.
type AccessGuard struct {
	verifier ports.TokenVerifier
}

func NewAccessGuard(verifier ports.TokenVerifier) *AccessGuard {
	return &AccessGuard{verifier: verifier}
}

// Authenticate verifies raw as of now. Failures match both
// domain.ErrUnauthenticated and the underlying domain.ErrToken* kind.
func (g *AccessGuard) Authenticate(raw string, now time.Time) (domain.Claims, error) {
	claims, err := g.verifier.Verify(raw, now)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	return claims, nil
}

// Authorize authenticates raw and then requires the token role to equal
// required. A role mismatch yields domain.ErrForbidden.
func (g *AccessGuard) Authorize(raw string, now time.Time, required domain.Role) (domain.Claims, error) {
	claims, err := g.Authenticate(raw, now)
	if err != nil {
		return domain.Claims{}, err
	}
	if claims.Role != required {
		return domain.Claims{}, domain.ErrForbidden
	}
	return claims, nil
}
