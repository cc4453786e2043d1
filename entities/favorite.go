package entities

import (
	"time"

	"github.com/google/uuid"
)

type UserFavorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	DateAdded time.Time `json:"date_added"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

func (UserFavorite) TableName() string {
	return "user_favorites"
}
