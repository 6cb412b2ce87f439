package implementation_test

import (
	"context"
	"os"
	"testing"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/migrations"
	"sticky-notes-be/internal/model"
	"sticky-notes-be/internal/repository/contract"
	"sticky-notes-be/internal/repository/implementation"
	"sticky-notes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, true)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, migrations.Up(context.Background(), sqlDB))
	return db
}

func createUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()

	user := &entity.User{Email: uuid.NewString() + "@it.test"}
	require.NoError(t, implementation.NewUserRepository(db).Create(context.Background(), user))
	t.Cleanup(func() {
		db.Delete(&model.User{}, "id = ?", user.Id)
	})
	return user
}

func TestUserRepositoryIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := implementation.NewUserRepository(db)

	user := createUser(t, db)
	assert.NotEqual(t, uuid.Nil, user.Id)
	assert.False(t, user.HasPassword())

	err := repo.Create(ctx, &entity.User{Email: user.Email})
	assert.ErrorIs(t, err, contract.ErrDuplicateEmail)

	require.NoError(t, repo.UpdatePassword(ctx, user.Id, "$2a$10$hash"))
	require.NoError(t, repo.LinkGoogleSubject(ctx, user.Id, "google-sub"))

	found, err := repo.FindByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.HasPassword())
	require.NotNil(t, found.GoogleSubject)
	assert.Equal(t, "google-sub", *found.GoogleSubject)

	missing, err := repo.FindByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, uuid.New(), "x"), contract.ErrNotFound)
}

func TestNoteRepositoryIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := implementation.NewNoteRepository(db)

	owner := createUser(t, db)
	other := createUser(t, db)

	title := "first"
	note := &entity.Note{UserId: owner.Id, Title: &title, Date: "2024-05-01"}
	require.NoError(t, repo.Create(ctx, note))
	assert.NotEqual(t, uuid.Nil, note.Id)

	second := &entity.Note{UserId: owner.Id, Date: "2024-05-02"}
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.FindAllByOwner(ctx, owner.Id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, note.Id, list[0].Id)

	hidden, err := repo.FindOwned(ctx, other.Id, note.Id)
	assert.NoError(t, err)
	assert.Nil(t, hidden)

	content := "body"
	note.Content = &content
	require.NoError(t, repo.Update(ctx, note))

	got, err := repo.FindOwned(ctx, owner.Id, note.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "body", *got.Content)

	assert.ErrorIs(t, repo.DeleteOwned(ctx, other.Id, note.Id), contract.ErrNotFound)
	require.NoError(t, repo.DeleteOwned(ctx, owner.Id, note.Id))
	assert.ErrorIs(t, repo.DeleteOwned(ctx, owner.Id, note.Id), contract.ErrNotFound)
}
