package types

import "github.com/google/uuid"

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GenerateListRequest selects the meal plans to expand into the shopping list
type GenerateListRequest struct {
	MealPlanIDs []uuid.UUID `json:"mealPlanIds" binding:"required,min=1"`
}

// CheckItemRequest toggles an item's checked state
type CheckItemRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

// ReplaceListRequest replaces the whole list content
type ReplaceListRequest struct {
	Items []ListItem `json:"items" binding:"required"`
}

// ResolveConflictRequest applies the caller's resolution of a unit conflict
type ResolveConflictRequest struct {
	FoodItemID string  `json:"foodItemId" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	Unit       string  `json:"unit" binding:"required"`
}
