package domain

import (
	"errors"
	"time"
)

// Token verification failures. Each one is distinct internally; the HTTP
// layer collapses all of them into the same 401.
var (
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenBadSignature  = errors.New("token signature invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMissingClaims = errors.New("token missing required claims")
)

// Authorization outcomes produced by the access guard.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access forbidden")
)

// Claims are the identity facts extracted from a verified token.
type Claims struct {
	Username  string
	Role      Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
