package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IFoodItemService defines the interface for food item catalog operations
type IFoodItemService interface {
	CreateFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error)
	GetFoodItem(ctx context.Context, id uuid.UUID) (*models.FoodItem, error)
	UpdateFoodItem(ctx context.Context, id uuid.UUID, item *models.FoodItem) (*models.FoodItem, error)
	DeleteFoodItem(ctx context.Context, id uuid.UUID) error
	ListFoodItems(ctx context.Context, userID uuid.UUID) ([]*models.FoodItem, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *models.Recipe) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListRecipes(ctx context.Context, userID *uuid.UUID) ([]*models.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]*models.Recipe, error)
}

// IMealPlanService defines the interface for meal plan operations
type IMealPlanService interface {
	CreateMealPlan(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error)
	GetMealPlan(ctx context.Context, id uuid.UUID) (*models.MealPlan, error)
	UpdateMealPlan(ctx context.Context, id uuid.UUID, plan *models.MealPlan) (*models.MealPlan, error)
	DeleteMealPlan(ctx context.Context, id uuid.UUID) error
	ListMealPlans(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error)
}

// IShoppingListService defines the interface for shopping list operations
type IShoppingListService interface {
	Generate(ctx context.Context, userID uuid.UUID, mealPlanIDs []uuid.UUID, updatedBy string) (*models.ShoppingList, []types.Conflict, error)
	GetList(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error)
	CheckItem(ctx context.Context, userID uuid.UUID, foodItemID string, checked bool, updatedBy string) error
	DeleteItem(ctx context.Context, userID uuid.UUID, foodItemID string, updatedBy string) error
	ReplaceList(ctx context.Context, userID uuid.UUID, items []types.ListItem, updatedBy string) (*models.ShoppingList, error)
	ResolveConflict(ctx context.Context, userID uuid.UUID, req *types.ResolveConflictRequest, updatedBy string) (*models.ShoppingList, error)
	FinishShop(ctx context.Context, userID uuid.UUID, updatedBy string) (*models.ShoppingList, error)
	ActiveShoppers(ctx context.Context, listID uuid.UUID) ([]types.ActiveUser, error)
}

// IImageService defines the interface for recipe image storage
type IImageService interface {
	UploadRecipeImage(ctx context.Context, data []byte, contentType string) (string, error)
	SignedRecipeImageURL(ctx context.Context, imageURL string) (string, error)
}
