package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  *string   `gorm:"type:varchar(255)"`
	GoogleSubject *string   `gorm:"type:varchar(255);index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
