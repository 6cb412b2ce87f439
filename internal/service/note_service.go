package service

import (
	"context"
	"errors"
	"time"

	"sticky-notes-be/internal/dto"
	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/mapper"
	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/internal/repository/contract"
	"sticky-notes-be/internal/repository/unitofwork"
	"sticky-notes-be/pkg/events"

	"github.com/google/uuid"
)

// INoteService takes the owner from the authenticated identity on every call.
// A note that belongs to someone else is reported as not found.
type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	ListForOwner(ctx context.Context, userId uuid.UUID) ([]dto.NoteResponse, error)
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
	mapper         *mapper.NoteMapper
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, log logger.ILogger) INoteService {
	return &noteService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
		mapper:         mapper.NewNoteMapper(),
	}
}

var errNoteNotFound = apperror.NotFound("Note not found")

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	now := time.Now()
	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		Content:   req.Content,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.uowFactory.NewUnitOfWork(ctx).NoteRepository().Create(ctx, &note); err != nil {
		return nil, apperror.Internal("Error creating note", err)
	}

	publishEvent(ctx, c.eventPublisher, c.logger, events.New(events.NoteCreated, map[string]interface{}{
		"note_id": note.Id.String(),
		"user_id": userId.String(),
	}))

	res := c.mapper.ToResponse(&note)
	return &res, nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := c.uowFactory.NewUnitOfWork(ctx).NoteRepository().FindOwned(ctx, userId, id)
	if err != nil {
		return nil, apperror.Internal("Error fetching note", err)
	}
	if note == nil {
		return nil, errNoteNotFound
	}

	res := c.mapper.ToResponse(note)
	return &res, nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	repo := c.uowFactory.NewUnitOfWork(ctx).NoteRepository()

	note, err := repo.FindOwned(ctx, userId, req.Id)
	if err != nil {
		return nil, apperror.Internal("Error updating note", err)
	}
	if note == nil {
		return nil, errNoteNotFound
	}

	if req.Title != nil {
		note.Title = req.Title
	}
	if req.Content != nil {
		note.Content = req.Content
	}
	if req.Date != nil {
		note.Date = *req.Date
	}
	note.UpdatedAt = time.Now()

	if err := repo.Update(ctx, note); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, errNoteNotFound
		}
		return nil, apperror.Internal("Error updating note", err)
	}

	res := c.mapper.ToResponse(note)
	return &res, nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	err := c.uowFactory.NewUnitOfWork(ctx).NoteRepository().DeleteOwned(ctx, userId, id)
	if errors.Is(err, contract.ErrNotFound) {
		return errNoteNotFound
	}
	if err != nil {
		return apperror.Internal("Error deleting note", err)
	}
	return nil
}

func (c *noteService) ListForOwner(ctx context.Context, userId uuid.UUID) ([]dto.NoteResponse, error) {
	notes, err := c.uowFactory.NewUnitOfWork(ctx).NoteRepository().FindAllByOwner(ctx, userId)
	if err != nil {
		return nil, apperror.Internal("Error fetching notes", err)
	}
	return c.mapper.ToResponses(notes), nil
}
