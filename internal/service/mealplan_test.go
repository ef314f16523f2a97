package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/service"
	"github.com/pantryline/backend/internal/testhelpers"
	"github.com/pantryline/backend/internal/types"
)

func TestMealPlanCRUD(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewMealPlanService(db)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.CreateMealPlan(ctx, &models.MealPlan{
		Name:   "this week",
		UserID: userID,
		Entries: models.MealPlanEntries{{
			Title: "monday dinner",
			Items: []types.Ingredient{
				{Type: types.IngredientFoodItem, FoodItemID: uuid.NewString(), Quantity: 1, Unit: "pound"},
			},
		}},
	})
	require.NoError(t, err)

	got, err := svc.GetMealPlan(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "monday dinner", got.Entries[0].Title)

	plans, err := svc.ListMealPlans(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, plans, 1)

	require.NoError(t, svc.DeleteMealPlan(ctx, created.ID))
	_, err = svc.GetMealPlan(ctx, created.ID)
	assert.Error(t, err)
}
