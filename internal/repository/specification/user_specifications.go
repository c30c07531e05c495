package specification

import "gorm.io/gorm"

// ByUsername filters users by username.
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}
