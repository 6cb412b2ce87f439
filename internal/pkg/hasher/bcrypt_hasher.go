// Package hasher hashes and checks account passwords.
package hasher

import "golang.org/x/crypto/bcrypt"

// DefaultCost matches the 10 rounds the existing password hashes were created with.
const DefaultCost = 10

// MaxPasswordBytes is the bcrypt input limit.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

type bcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Check reports false for an empty hash: an account without a password cannot log in.
func (h *bcryptHasher) Check(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
