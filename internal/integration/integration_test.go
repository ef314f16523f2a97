package integration_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/resolver"
	"github.com/pantryline/backend/internal/service"
	"github.com/pantryline/backend/internal/session"
	"github.com/pantryline/backend/internal/testhelpers"
	"github.com/pantryline/backend/internal/types"
)

// Full pipeline against real Postgres and Redis: generate a list from a
// meal plan, mutate it, and watch the mutations arrive on a second
// client's session controller.
func TestShoppingSessionEndToEnd(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	redisClient := testhelpers.SetupTestRedis(t)
	ctx := context.Background()

	userID := uuid.New()
	carrot := models.FoodItem{SingularName: "carrot", PluralName: "carrots", UserID: userID}
	require.NoError(t, db.Create(&carrot).Error)

	plan := models.MealPlan{
		Name:   "week",
		UserID: userID,
		Entries: models.MealPlanEntries{{
			Title: "dinner",
			Items: []types.Ingredient{
				{Type: types.IngredientFoodItem, FoodItemID: carrot.ID.String(), Quantity: 4},
			},
		}},
	}
	require.NoError(t, db.Create(&plan).Error)

	recipeSvc := service.NewRecipeService(db)
	foodSvc := service.NewFoodItemService(db)
	res := resolver.New(service.NewRecipeLookup(recipeSvc), nil)

	serverTransport := session.NewRedisTransport(redisClient, "shopping", nil)
	listSvc := service.NewShoppingListService(db, res, foodSvc, serverTransport, nil)

	list, conflicts, err := listSvc.Generate(ctx, userID, []uuid.UUID{plan.ID}, "amy@example.com")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "carrots", list.Items[0].Name)

	// Second client attaches a controller to the list's channel.
	var mu sync.Mutex
	var checked []types.ItemCheckedEvent
	clientTransport := session.NewRedisTransport(redisClient, "shopping", nil)
	controller := session.NewController(clientTransport, session.Handlers{
		ItemChecked: func(e types.ItemCheckedEvent) {
			mu.Lock()
			checked = append(checked, e)
			mu.Unlock()
		},
	}, nil)
	require.NoError(t, controller.Enable(ctx, list.ID.String(), &types.ActiveUser{Email: "bob@example.com", Name: "Bob"}))
	defer controller.Disable()

	// Redis subscriptions settle asynchronously.
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, listSvc.CheckItem(ctx, userID, carrot.ID.String(), true, "amy@example.com"))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(checked) == 1
	}, 5*time.Second, 50*time.Millisecond)

	mu.Lock()
	assert.Equal(t, carrot.ID.String(), checked[0].FoodItemID)
	assert.True(t, checked[0].Checked)
	assert.Equal(t, "amy@example.com", checked[0].UpdatedBy)
	mu.Unlock()

	// Presence from the controller shows up in ActiveShoppers.
	assert.Eventually(t, func() bool {
		shoppers, err := listSvc.ActiveShoppers(ctx, list.ID)
		return err == nil && len(shoppers) == 1
	}, 5*time.Second, 50*time.Millisecond)

	shoppers, err := listSvc.ActiveShoppers(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", shoppers[0].Email)
}
