package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id            uuid.UUID
	Email         string
	PasswordHash  *string
	GoogleSubject *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPassword is false for accounts created by OTP confirmation that never set one.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Identity is what the auth gate hands to downstream handlers.
type Identity struct {
	Id    uuid.UUID
	Email string
}
