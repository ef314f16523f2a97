package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseRecord is one line of the purchase-history ledger written by
// finishing a shop.
type PurchaseRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	FoodItemID  string    `gorm:"size:64;not null" json:"foodItemId"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	Unit        string    `gorm:"size:32" json:"unit"`
	PurchasedAt time.Time `gorm:"not null" json:"purchased_at"`
}

func (p *PurchaseRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
