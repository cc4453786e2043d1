package entities

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username        string    `gorm:"size:100;not null" json:"username"`
	Email           string    `gorm:"size:255;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	FirstName       string    `gorm:"size:100" json:"first_name"`
	LastName        string    `gorm:"size:100" json:"last_name"`
	Role            string    `gorm:"size:20;not null;index" json:"role"`
	ProfileImageKey string    `json:"-"`
	IsDisabled      bool      `json:"is_disabled"`
	Timestamp
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	return nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
