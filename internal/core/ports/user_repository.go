package ports

import (
	"context"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

// UserRepository defines the persistence operations for identities.
type UserRepository interface {
	// FindByUsername performs an exact, case-sensitive lookup and returns
	// domain.ErrUserNotFound when no identity matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create stores a new identity and assigns its ID. Returns
	// domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
