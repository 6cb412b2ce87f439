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
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if modelUser.Id == uuid.Nil {
		modelUser.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(modelUser).Error; err != nil {
		if isUniqueViolation(err) {
			return contract.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, specification.ByID{ID: id})
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, specification.ByEmail{Email: email})
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateColumn(ctx, id, "password_hash", passwordHash)
}

func (r *UserRepositoryImpl) LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) error {
	return r.updateColumn(ctx, id, "google_subject", subject)
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return r.mapper.ToEntity(&modelUser), nil
}

func (r *UserRepositoryImpl) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	res := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.User{}), specification.ByID{ID: id}).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update user %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
