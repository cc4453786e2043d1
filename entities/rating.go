package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rating struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_recipe,priority:2" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_recipe,priority:1" json:"user_id"`
	Score    int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	Comment  string    `gorm:"size:500" json:"comment"`
	RatedAt  time.Time `json:"rated_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}
