package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID              uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Category        string          `gorm:"size:50" json:"category"`
	ImageURL        string          `gorm:"size:255" json:"image_url"`
	Servings        float64         `gorm:"type:float;default:1" json:"servings"`
	IngredientLists IngredientLists `gorm:"type:jsonb;not null;default:'[]'" json:"ingredient_lists"`
	Instructions    string          `gorm:"type:text" json:"instructions"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
