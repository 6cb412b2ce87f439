package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	passwords := []string{"secret1", "correct horse battery staple", "пароль", "a"}
	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			hash, err := h.Hash(p)
			require.NoError(t, err)
			assert.NotEqual(t, p, hash)

			assert.True(t, h.Check(p, hash))
			assert.False(t, h.Check(p+"x", hash))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCheckEmptyHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	assert.False(t, h.Check("", ""))
	assert.False(t, h.Check("secret1", ""))
}

func TestDefaultCostUsed(t *testing.T) {
	h := NewBcryptHasher(0)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	// the limit is in bytes, not characters
	_, err = h.Hash(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)
}
