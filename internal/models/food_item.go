package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodItem is the catalog entry an ingredient reference points at. The
// singular/plural pair drives display-name resolution when an item first
// lands on a shopping list.
type FoodItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	SingularName string         `gorm:"size:255;not null" json:"singular_name"`
	PluralName   string         `gorm:"size:255;not null" json:"plural_name"`
	Category     string         `gorm:"size:50" json:"category"`
	DefaultUnit  string         `gorm:"size:32" json:"default_unit"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// DisplayName returns the singular or plural name depending on quantity.
func (f *FoodItem) DisplayName(quantity float64) string {
	if quantity == 1 {
		return f.SingularName
	}
	if f.PluralName != "" {
		return f.PluralName
	}
	return f.SingularName
}
