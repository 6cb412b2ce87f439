package mocks

import (
	"context"
	"sort"
	"sync"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/repository/contract"
	"sticky-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// FakeStore is an in-memory users and notes store behind the unit of work
// contract, used by HTTP scenario tests.
type FakeStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entity.User
	notes map[uuid.UUID]entity.Note
	seq   map[uuid.UUID]int
	next  int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		users: make(map[uuid.UUID]entity.User),
		notes: make(map[uuid.UUID]entity.Note),
		seq:   make(map[uuid.UUID]int),
	}
}

func (s *FakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: s}
}

type fakeUnitOfWork struct {
	store *FakeStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return (*fakeUserRepository)(u.store)
}

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository {
	return (*fakeNoteRepository)(u.store)
}

type fakeUserRepository FakeStore

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return contract.ErrDuplicateEmail
		}
	}
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	r.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return contract.ErrNotFound
	}
	u.PasswordHash = &passwordHash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepository) LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return contract.ErrNotFound
	}
	u.GoogleSubject = &subject
	r.users[id] = u
	return nil
}

type fakeNoteRepository FakeStore

func (r *fakeNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	r.notes[note.Id] = *note
	r.next++
	r.seq[note.Id] = r.next
	return nil
}

func (r *fakeNoteRepository) FindOwned(ctx context.Context, ownerId, id uuid.UUID) (*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notes[id]
	if !ok || n.UserId != ownerId {
		return nil, nil
	}
	return &n, nil
}

func (r *fakeNoteRepository) FindAllByOwner(ctx context.Context, ownerId uuid.UUID) ([]*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var notes []*entity.Note
	for _, n := range r.notes {
		if n.UserId == ownerId {
			found := n
			notes = append(notes, &found)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return r.seq[notes[i].Id] < r.seq[notes[j].Id]
	})
	return notes, nil
}

func (r *fakeNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[note.Id]
	if !ok || n.UserId != note.UserId {
		return contract.ErrNotFound
	}
	r.notes[note.Id] = *note
	return nil
}

func (r *fakeNoteRepository) DeleteOwned(ctx context.Context, ownerId, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UserId != ownerId {
		return contract.ErrNotFound
	}
	delete(r.notes, id)
	delete(r.seq, id)
	return nil
}
