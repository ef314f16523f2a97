package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryline/backend/internal/types"
)

// ShoppingList is the one durable artifact of the aggregation pipeline.
// One active list per user.
type ShoppingList struct {
	ID        uuid.UUID          `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Items     []ShoppingListItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items"`
}

func (s *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ShoppingListItem carries display state (name, checked) on top of the
// extracted (foodItemId, quantity, unit) triple. Position preserves
// insertion order across replace operations.
type ShoppingListItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primarykey" json:"-"`
	ListID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	FoodItemID string    `gorm:"size:64;not null;index" json:"foodItemId"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Quantity   float64   `gorm:"not null" json:"quantity"`
	Unit       string    `gorm:"size:32" json:"unit"`
	Checked    bool      `gorm:"not null;default:false" json:"checked"`
	Position   int       `gorm:"not null;default:0" json:"-"`
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ToWire converts the persisted item to the wire/list payload shape.
func (i ShoppingListItem) ToWire() types.ListItem {
	return types.ListItem{
		FoodItemID: i.FoodItemID,
		Name:       i.Name,
		Quantity:   i.Quantity,
		Unit:       i.Unit,
		Checked:    i.Checked,
	}
}

// WireItems converts a slice of persisted items to wire shape, preserving order.
func WireItems(items []ShoppingListItem) []types.ListItem {
	out := make([]types.ListItem, len(items))
	for idx, it := range items {
		out[idx] = it.ToWire()
	}
	return out
}
