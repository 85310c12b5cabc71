package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerationRecord is one fulfilled generation request, kept so users can
// revisit what they asked for. Only successful generations are recorded.
type GenerationRecord struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      string    `gorm:"size:64;index;not null" json:"user_id"`
	Scenario    string    `gorm:"size:32;not null" json:"scenario"`
	Ingredients string    `gorm:"type:text" json:"ingredients"`
	Language    string    `gorm:"size:8" json:"language"`
	RecipeCount int       `json:"recipe_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *GenerationRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
