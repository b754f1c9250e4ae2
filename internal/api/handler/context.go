package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. An empty
// username means the middleware did not run, which is reported as
// unauthenticated rather than trusted.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)
	if username == "" || role == "" {
		return domain.Claims{}, domain.ErrUnauthenticated
	}
	tokenID, _ := c.Get("token_id").(string)
	return domain.Claims{
		Username: username,
		Role:     domain.Role(role),
		TokenID:  tokenID,
	}, nil
}
