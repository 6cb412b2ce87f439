package contract

import (
	"context"

	"sticky-notes-be/internal/entity"

	"github.com/google/uuid"
)

// UserRepository returns (nil, nil) from the Find methods when no user matches.
// Create returns ErrDuplicateEmail when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) error
}
