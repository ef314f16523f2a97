package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealPlan struct {
	ID        uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	Entries   MealPlanEntries `gorm:"type:jsonb;not null;default:'[]'" json:"entries"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
}

func (m *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
