package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pantryline/backend/internal/types"
)

// IngredientLists is a custom type for persisting a recipe's ingredient
// lists as JSONB.
type IngredientLists []types.IngredientList

// Value implements the driver.Valuer interface
func (l IngredientLists) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientLists) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientLists{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// MealPlanEntries is a custom type for persisting a meal plan's slots as
// JSONB.
type MealPlanEntries []types.MealPlanEntry

// Value implements the driver.Valuer interface
func (e MealPlanEntries) Value() (driver.Value, error) {
	if len(e) == 0 {
		return "[]", nil
	}
	return json.Marshal(e)
}

// Scan implements the sql.Scanner interface
func (e *MealPlanEntries) Scan(value interface{}) error {
	if value == nil {
		*e = MealPlanEntries{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, e)
}
