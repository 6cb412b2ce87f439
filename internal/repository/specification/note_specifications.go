package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserOwnedBy restricts a notes query to one owner.
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
