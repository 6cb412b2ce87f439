package specification

import "gorm.io/gorm"

// ByEmail expects an already normalized (trimmed, lower-cased) address.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
