package mapper

import (
	"sticky-notes-be/internal/dto"
	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:            u.Id,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		GoogleSubject: u.GoogleSubject,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:            u.Id,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		GoogleSubject: u.GoogleSubject,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToDTO(u *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:    u.Id,
		Email: u.Email,
	}
}
