package ports

import (
	"context"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Password string
	Role     string // empty = domain.DefaultRole
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	User        *domain.User
}

// AuthService defines the login and registration use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
