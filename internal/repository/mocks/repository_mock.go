// Package mocks holds testify mocks and an in-memory store for the repository
// contracts. Only tests import it.
package mocks

import (
	"context"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/repository/contract"
	"sticky-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) error {
	args := m.Called(ctx, id, subject)
	return args.Error(0)
}

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) FindOwned(ctx context.Context, ownerId, id uuid.UUID) (*entity.Note, error) {
	args := m.Called(ctx, ownerId, id)
	note, _ := args.Get(0).(*entity.Note)
	return note, args.Error(1)
}

func (m *MockNoteRepository) FindAllByOwner(ctx context.Context, ownerId uuid.UUID) ([]*entity.Note, error) {
	args := m.Called(ctx, ownerId)
	notes, _ := args.Get(0).([]*entity.Note)
	return notes, args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) DeleteOwned(ctx context.Context, ownerId, id uuid.UUID) error {
	args := m.Called(ctx, ownerId, id)
	return args.Error(0)
}

type MockOtpRepository struct {
	mock.Mock
}

func (m *MockOtpRepository) Upsert(ctx context.Context, otp *entity.Otp) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockOtpRepository) Take(ctx context.Context, code string) (*entity.Otp, error) {
	args := m.Called(ctx, code)
	otp, _ := args.Get(0).(*entity.Otp)
	return otp, args.Error(1)
}

func (m *MockOtpRepository) TakeFor(ctx context.Context, code, email string) (*entity.Otp, error) {
	args := m.Called(ctx, code, email)
	otp, _ := args.Get(0).(*entity.Otp)
	return otp, args.Error(1)
}

type MockTokenBlacklistRepository struct {
	mock.Mock
}

func (m *MockTokenBlacklistRepository) Add(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenBlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockUnitOfWork hands out the given repositories; transaction calls are recorded
// only when expectations are set for them.
type MockUnitOfWork struct {
	mock.Mock
	Users contract.UserRepository
	Notes contract.NoteRepository
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	if !m.expects("Begin") {
		return nil
	}
	return m.Called(ctx).Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	if !m.expects("Commit") {
		return nil
	}
	return m.Called().Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	if !m.expects("Rollback") {
		return nil
	}
	return m.Called().Error(0)
}

func (m *MockUnitOfWork) UserRepository() contract.UserRepository {
	return m.Users
}

func (m *MockUnitOfWork) NoteRepository() contract.NoteRepository {
	return m.Notes
}

func (m *MockUnitOfWork) expects(method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}

// MockRepositoryFactory always returns the same unit of work.
type MockRepositoryFactory struct {
	UoW unitofwork.UnitOfWork
}

func (f *MockRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.UoW
}

// NewMockFactory wires user and note mocks into a factory.
func NewMockFactory(users *MockUserRepository, notes *MockNoteRepository) *MockRepositoryFactory {
	return &MockRepositoryFactory{UoW: &MockUnitOfWork{Users: users, Notes: notes}}
}
