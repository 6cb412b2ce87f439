package mapper

import (
	"sticky-notes-be/internal/dto"
	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	return &entity.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Date:      n.Date,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	return &model.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Date:      n.Date,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToResponse(n *entity.Note) dto.NoteResponse {
	return dto.NoteResponse{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Date:      n.Date,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ToResponses never returns nil so an empty list renders as [].
func (m *NoteMapper) ToResponses(notes []*entity.Note) []dto.NoteResponse {
	res := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, m.ToResponse(n))
	}
	return res
}
