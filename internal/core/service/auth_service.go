package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/HapppyEnd/api-server/internal/core/domain"
	"github.com/HapppyEnd/api-server/internal/core/ports"
)

const tokenTypeBearer = "bearer"

// AuthService implements registration and login.
type AuthService struct {
	users       ports.UserRepository
	credentials *CredentialStore
	hasher      ports.PasswordHasher
	issuer      ports.TokenIssuer
	logins      ports.LoginTracker
	log         zerolog.Logger
	now         func() time.Time
}

// NewAuthService wires the login use case. logins may be nil.
func NewAuthService(
	users ports.UserRepository,
	credentials *CredentialStore,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	logins ports.LoginTracker,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		credentials: credentials,
		hasher:      hasher,
		issuer:      issuer,
		logins:      logins,
		log:         log,
		now:         time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if n := utf8.RuneCountInString(in.Username); n < 3 || n > 30 {
		return nil, domain.ErrInvalidUsername
	}
	if n := len(in.Password); n < 8 || n > 72 {
		return nil, domain.ErrInvalidPassword
	}

	role := domain.DefaultRole
	if in.Role != "" {
		role = domain.Role(in.Role)
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.credentials.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	token, err := s.issuer.Issue(user, now)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.logins != nil {
		if err := s.logins.RecordLogin(ctx, user.Username, now); err != nil {
			s.log.Warn().Err(err).Str("username", user.Username).Msg("failed to record login")
		}
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.LoginResult{AccessToken: token, TokenType: tokenTypeBearer, User: user}, nil
}

// LastLogin returns when username last logged in, or the zero time when
// unknown or when no tracker is configured.
func (s *AuthService) LastLogin(ctx context.Context, username string) (time.Time, error) {
	if s.logins == nil {
		return time.Time{}, nil
	}
	return s.logins.LastLogin(ctx, username)
}
