package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/HapppyEnd/api-server/internal/core/domain"
	"github.com/HapppyEnd/api-server/internal/core/ports"
)

// timingPassword is hashed once so unknown usernames cost the same bcrypt
// work as known ones.
const timingPassword = "credential-store-timing-equaliser"

// CredentialStore looks up identities and checks their passwords.
type CredentialStore struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	dummyHash string
}

func NewCredentialStore(users ports.UserRepository, hasher ports.PasswordHasher) (*CredentialStore, error) {
	dummy, err := hasher.Hash(timingPassword)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return &CredentialStore{users: users, hasher: hasher, dummyHash: dummy}, nil
}

// FindByUsername returns the identity with exactly this username.
func (s *CredentialStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// VerifyCredentials returns the identity when password matches. An unknown
// username and a wrong password both yield domain.ErrInvalidCredentials.
// Storage failures are returned wrapped and are not retried.
func (s *CredentialStore) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.hasher.Verify(password, s.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
