package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/HapppyEnd/api-server/internal/api/metrics"
	"github.com/HapppyEnd/api-server/internal/core/domain"
)

// Authorizer is the access guard consulted for every protected request.
type Authorizer interface {
	Authenticate(raw string, now time.Time) (domain.Claims, error)
	Authorize(raw string, now time.Time, required domain.Role) (domain.Claims, error)
}

// Auth admits any request carrying a valid bearer token and injects its
// claims into context.
func Auth(guard Authorizer, log zerolog.Logger) echo.MiddlewareFunc {
	return guarded(log, func(raw string, now time.Time) (domain.Claims, error) {
		return guard.Authenticate(raw, now)
	})
}

// RequireRole admits only tokens whose role equals role.
func RequireRole(guard Authorizer, role domain.Role, log zerolog.Logger) echo.MiddlewareFunc {
	return guarded(log, func(raw string, now time.Time) (domain.Claims, error) {
		return guard.Authorize(raw, now, role)
	})
}

func guarded(log zerolog.Logger, check func(string, time.Time) (domain.Claims, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err == nil {
				var claims domain.Claims
				claims, err = check(raw, time.Now())
				if err == nil {
					metrics.AuthorizationsTotal.WithLabelValues("authorized").Inc()
					c.Set("username", claims.Username)
					c.Set("role", string(claims.Role))
					c.Set("token_id", claims.TokenID)
					return next(c)
				}
			}

			reason := outcome(err)
			metrics.AuthorizationsTotal.WithLabelValues(reason).Inc()
			log.Info().
				Str("reason", reason).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request rejected")
			return err
		}
	}
}

var errNoToken = errors.New("no bearer token")

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, errNoToken)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrTokenMalformed)
	}
	return strings.TrimSpace(parts[1]), nil
}

// outcome names the internal reason for a rejection; it never reaches clients.
func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenBadSignature):
		return "bad_signature"
	case errors.Is(err, domain.ErrTokenMissingClaims):
		return "missing_claims"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	default:
		return "no_token"
	}
}
