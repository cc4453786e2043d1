package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Recipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID      uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Description     string    `gorm:"size:1000" json:"description"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	Servings        int       `json:"servings"`
	MainImageKey    string    `json:"-"`
	IsApproved      bool      `gorm:"index" json:"is_approved"`
	IsRejected      bool      `json:"is_rejected"`
	ModerationNotes *string   `json:"moderation_notes"`

	User        *User        `gorm:"foreignKey:UserID"`
	Category    *Category    `gorm:"foreignKey:CategoryID"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID"`
	Steps       []RecipeStep `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Quantity  string    `gorm:"size:50" json:"quantity"`
	Unit      string    `gorm:"size:20" json:"unit"`
	SortOrder int       `json:"sort_order"`
}

type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	StepNumber  int       `gorm:"not null" json:"step_number"`
	Description string    `gorm:"size:1000;not null" json:"description"`
	ImageKey    string    `json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	newID(&i.ID)
	return nil
}

func (s *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	newID(&s.ID)
	return nil
}

// Approve, Reject and ResetModeration are the only writers of the moderation
// fields, so IsApproved and IsRejected are never set together.
func (r *Recipe) Approve(notes string) {
	r.IsApproved = true
	r.IsRejected = false
	r.ModerationNotes = &notes
}

func (r *Recipe) Reject(notes string) {
	r.IsApproved = false
	r.IsRejected = true
	r.ModerationNotes = &notes
}

func (r *Recipe) ResetModeration() {
	r.IsApproved = false
	r.IsRejected = false
	r.ModerationNotes = nil
}

func (r *Recipe) Status() string {
	switch {
	case r.IsApproved:
		return StatusApproved
	case r.IsRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}
