package implementation

import (
	"context"
	"errors"
	"fmt"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/mapper"
	"sticky-notes-be/internal/model"
	"sticky-notes-be/internal/repository/contract"
	"sticky-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) FindOwned(ctx context.Context, ownerId, id uuid.UUID) (*entity.Note, error) {
	var m model.Note
	query := specification.ApplyAll(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: ownerId},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAllByOwner(ctx context.Context, ownerId uuid.UUID) ([]*entity.Note, error) {
	var models []*model.Note
	query := specification.ApplyAll(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: ownerId},
		specification.OrderBy{Field: "created_at"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return r.mapper.ToEntities(models), nil
}

// Update saves title, content and date of a note the owner already holds.
func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	res := specification.ApplyAll(r.db.WithContext(ctx).Model(m),
		specification.UserOwnedBy{UserID: note.UserId},
	).Select("title", "content", "date", "updated_at").Updates(m)
	if res.Error != nil {
		return fmt.Errorf("update note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) DeleteOwned(ctx context.Context, ownerId, id uuid.UUID) error {
	res := specification.ApplyAll(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: ownerId},
	).Delete(&model.Note{})
	if res.Error != nil {
		return fmt.Errorf("delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}
