package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/service"
	"github.com/pantryline/backend/internal/testhelpers"
	"github.com/pantryline/backend/internal/types"
)

func TestRecipeCRUD(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.CreateRecipe(ctx, &models.Recipe{
		Name:     "pancakes",
		Servings: 4,
		UserID:   userID,
		IngredientLists: models.IngredientLists{{
			Ingredients: []types.Ingredient{
				{Type: types.IngredientFoodItem, FoodItemID: uuid.NewString(), Quantity: 2, Unit: "cup"},
			},
		}},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pancakes", got.Name)
	require.Len(t, got.IngredientLists, 1)
	assert.Equal(t, 2.0, got.IngredientLists[0].Ingredients[0].Quantity)

	_, err = svc.UpdateRecipe(ctx, created.ID, &models.Recipe{Name: "blueberry pancakes"})
	require.NoError(t, err)
	got, err = svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "blueberry pancakes", got.Name)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))
	_, err = svc.GetRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, created.ID), gorm.ErrRecordNotFound)
}

func TestListRecipesScopedToUser(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	amy, bob := uuid.New(), uuid.New()
	_, err := svc.CreateRecipe(ctx, &models.Recipe{Name: "soup", UserID: amy})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, &models.Recipe{Name: "salad", UserID: bob})
	require.NoError(t, err)

	mine, err := svc.ListRecipes(ctx, &amy)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "soup", mine[0].Name)

	all, err := svc.ListRecipes(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearchRecipes(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.CreateRecipe(ctx, &models.Recipe{Name: "Tomato Soup", Description: "hearty", UserID: userID})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, &models.Recipe{Name: "Green Salad", Description: "with tomato wedges", UserID: userID})
	require.NoError(t, err)

	found, err := svc.SearchRecipes(ctx, "tomato")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.SearchRecipes(ctx, "soup")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Tomato Soup", found[0].Name)
}

func TestRecipeLookupAdapter(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, &models.Recipe{Name: "dough", UserID: uuid.New()})
	require.NoError(t, err)

	lookup := service.NewRecipeLookup(svc)
	got, err := lookup.GetRecipe(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = lookup.GetRecipe(ctx, "not-a-uuid")
	assert.Error(t, err)

	_, err = lookup.GetRecipe(ctx, uuid.NewString())
	assert.Error(t, err)
}
