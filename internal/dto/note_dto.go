package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Date    string  `json:"date" validate:"required"`
}

// UpdateNoteRequest only changes the fields that are present in the body.
type UpdateNoteRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Date    *string   `json:"date" validate:"omitempty,min=1"`
}

type NoteResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"userId"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NoteMessageResponse struct {
	Message string       `json:"message"`
	Note    NoteResponse `json:"note"`
}
