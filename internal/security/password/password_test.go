package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestHasher_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	for _, p := range []string{"testpassword", "", "pässwörd-ünïcode", strings.Repeat("x", MaxLength)} {
		enc, err := h.Hash(p)
		require.NoError(t, err)
		require.NotEqual(t, p, enc)
		require.True(t, h.Verify(p, enc), "plaintext %q should verify", p)
	}
}

func TestHasher_FreshSaltPerCall(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("testpassword")
	require.NoError(t, err)
	b, err := h.Hash("testpassword")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.True(t, h.Verify("testpassword", a))
	require.True(t, h.Verify("testpassword", b))
}

func TestHasher_WrongPassword(t *testing.T) {
	h := newTestHasher(t)

	enc, err := h.Hash("testpassword")
	require.NoError(t, err)
	require.False(t, h.Verify("testpassworD", enc))
	require.False(t, h.Verify("", enc))
}

func TestHasher_MalformedHashFailsClosed(t *testing.T) {
	h := newTestHasher(t)

	enc, err := h.Hash("testpassword")
	require.NoError(t, err)

	for _, bad := range []string{
		"",
		"testpassword",
		"$2a$04$",
		enc[:len(enc)-5],
		strings.Replace(enc, "$2a$", "$9z$", 1),
		"$argon2id$v=19$m=65536,t=3,p=1$c2FsdA$ZGlnZXN0",
	} {
		require.False(t, h.Verify("testpassword", bad), "hash %q must not verify", bad)
	}
}

func TestHasher_TooLongPasswordErrors(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash(strings.Repeat("x", MaxLength+1))
	require.Error(t, err)
}

func TestNewHasher_Cost(t *testing.T) {
	h, err := NewHasher(0)
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, h.cost)

	_, err = NewHasher(bcrypt.MaxCost + 1)
	require.ErrorIs(t, err, ErrInvalidCost)

	_, err = NewHasher(1)
	require.ErrorIs(t, err, ErrInvalidCost)
}
