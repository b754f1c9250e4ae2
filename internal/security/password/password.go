// Package password hashes and verifies user passwords with bcrypt.
//
// Encoded hashes use the standard modular crypt format
// ($2a$<cost>$<salt+digest>), so the cost and salt travel with the digest
// and a stored hash can be verified without any extra state.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest plaintext bcrypt accepts.
const MaxLength = 72

// ErrInvalidCost is returned by NewHasher for costs outside bcrypt's range.
var ErrInvalidCost = errors.New("password: invalid bcrypt cost")

// Hasher implements ports.PasswordHasher using bcrypt.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost. A zero cost selects bcrypt.DefaultCost.
func NewHasher(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}
	return &Hasher{cost: cost}, nil
}

// Hash returns a freshly salted bcrypt hash of plaintext. Two calls with the
// same input never return the same string.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A corrupted or foreign hash
// yields false.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
