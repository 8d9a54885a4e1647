package models

import (
	"gorm.io/gorm"
)

// User is a staff member allowed to manage events.
type User struct {
	gorm.Model
	GUID     string `gorm:"uniqueIndex;size:36" json:"guid"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Email    string `json:"email"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureGUID(&u.GUID)
	return nil
}
