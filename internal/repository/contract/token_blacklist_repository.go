package contract

import (
	"context"
	"errors"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateToken = errors.New("token already blacklisted")
	ErrOtpCodeInUse   = errors.New("otp code already in use")
	ErrNotFound       = errors.New("record not found")
)

type TokenBlacklistRepository interface {
	// Add returns ErrDuplicateToken when the token is already present.
	Add(ctx context.Context, token string) error
	Exists(ctx context.Context, token string) (bool, error)
}
