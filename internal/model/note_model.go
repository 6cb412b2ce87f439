package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     *string   `gorm:"type:varchar(255)"`
	Content   *string   `gorm:"type:text"`
	Date      string    `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
