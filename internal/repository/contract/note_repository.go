package contract

import (
	"context"

	"sticky-notes-be/internal/entity"

	"github.com/google/uuid"
)

// NoteRepository scopes every single-note operation by owner. A note owned by
// someone else is indistinguishable from a missing one: (nil, nil) or ErrNotFound.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindOwned(ctx context.Context, ownerId, id uuid.UUID) (*entity.Note, error)
	FindAllByOwner(ctx context.Context, ownerId uuid.UUID) ([]*entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	DeleteOwned(ctx context.Context, ownerId, id uuid.UUID) error
}
