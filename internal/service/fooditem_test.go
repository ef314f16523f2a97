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
)

func TestFoodItemCRUD(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewFoodItemService(db)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.CreateFoodItem(ctx, &models.FoodItem{
		SingularName: "onion",
		PluralName:   "onions",
		Category:     "produce",
		DefaultUnit:  "",
		UserID:       userID,
	})
	require.NoError(t, err)

	got, err := svc.GetFoodItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "onion", got.SingularName)

	_, err = svc.UpdateFoodItem(ctx, created.ID, &models.FoodItem{Category: "vegetables"})
	require.NoError(t, err)
	got, err = svc.GetFoodItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "vegetables", got.Category)

	items, err := svc.ListFoodItems(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.DeleteFoodItem(ctx, created.ID))
	_, err = svc.GetFoodItem(ctx, created.ID)
	assert.Error(t, err)
}

func TestNamesFor(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewFoodItemService(db)
	ctx := context.Background()
	userID := uuid.New()

	onion, err := svc.CreateFoodItem(ctx, &models.FoodItem{
		SingularName: "onion", PluralName: "onions", UserID: userID,
	})
	require.NoError(t, err)

	names, err := svc.NamesFor(ctx, []string{onion.ID.String(), "not-a-uuid", uuid.NewString()})
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "onion", names[onion.ID.String()].Singular)
	assert.Equal(t, "onions", names[onion.ID.String()].Plural)
}
