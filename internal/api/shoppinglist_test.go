package api_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryline/backend/internal/session"
	"github.com/pantryline/backend/internal/types"
)

type listResponse struct {
	ID        string           `json:"id"`
	Items     []types.ListItem `json:"items"`
	Conflicts []types.Conflict `json:"conflicts"`
}

// seedPlan creates a food item and a meal plan through the API and
// returns their ids.
func seedPlan(t *testing.T, a *testAPI, token string, quantity float64, unit string) (foodItemID, planID string) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/v1/food-items", token, gin.H{
		"singular_name": "carrot",
		"plural_name":   "carrots",
		"category":      "produce",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item struct {
		ID string `json:"id"`
	}
	decode(t, w, &item)

	w = a.do(t, http.MethodPost, "/api/v1/meal-plans", token, gin.H{
		"name": "week",
		"entries": []gin.H{{
			"title": "dinner",
			"items": []gin.H{{
				"type":       "foodItem",
				"foodItemId": item.ID,
				"quantity":   quantity,
				"unit":       unit,
			}},
		}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var plan struct {
		ID string `json:"id"`
	}
	decode(t, w, &plan)

	return item.ID, plan.ID
}

func TestGenerateEndpoint(t *testing.T) {
	a := newTestAPI(t)
	token := a.register(t, "Amy", "amy@example.com")
	_, planID := seedPlan(t, a, token, 3, "")

	w := a.do(t, http.MethodPost, "/api/v1/shopping-list/generate", token, gin.H{
		"mealPlanIds": []string{planID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp listResponse
	decode(t, w, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "carrots", resp.Items[0].Name)
	assert.Equal(t, 3.0, resp.Items[0].Quantity)
	assert.False(t, resp.Items[0].Checked)
	assert.Empty(t, resp.Conflicts)
}

func TestGenerateUnknownPlan(t *testing.T) {
	a := newTestAPI(t)
	token := a.register(t, "Amy", "amy@example.com")

	w := a.do(t, http.MethodPost, "/api/v1/shopping-list/generate", token, gin.H{
		"mealPlanIds": []string{"6a7bb02e-41f4-4c14-9f0f-13a8a9a3a4ce"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateValidation(t *testing.T) {
	a := newTestAPI(t)
	token := a.register(t, "Amy", "amy@example.com")

	w := a.do(t, http.MethodPost, "/api/v1/shopping-list/generate", token, gin.H{
		"mealPlanIds": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckAndDeleteItemEndpoints(t *testing.T) {
	a := newTestAPI(t)
	token := a.register(t, "Amy", "amy@example.com")
	foodItemID, planID := seedPlan(t, a, token, 2, "cup")

	w := a.do(t, http.MethodPost, "/api/v1/shopping-list/generate", token, gin.H{
		"mealPlanIds": []string{planID},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var generated listResponse
	decode(t, w, &generated)

	// Watch the session channel for the mirrored events.
	var mu sync.Mutex
	var checkedPayloads int
	ch := a.hub.Client().Channel(session.ChannelName(generated.ID))
	unsub, err := ch.Subscribe(context.Background(), types.EventItemChecked, func(payload []byte) {
		mu.Lock()
		checkedPayloads++
		mu.Unlock()
	})
	require.NoError(t, err)
	defer unsub()

	w = a.do(t, http.MethodPatch, "/api/v1/shopping-list/items/"+foodItemID+"/check", token, gin.H{
		"checked": true,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)

	mu.Lock()
	assert.Equal(t, 1, checkedPayloads)
	mu.Unlock()

	w = a.do(t, http.MethodGet, "/api/v1/shopping-list", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var current listResponse
	decode(t, w, &current)
	require.Len(t, current.Items, 1)
	assert.True(t, current.Items[0].Checked)

	w = a.do(t, http.MethodDelete, "/api/v1/shopping-list/items/"+foodItemID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodDelete, "/api/v1/shopping-list/items/"+foodItemID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplaceListEndpoint(t *testing.T) {
	a := newTestAPI(t)
	token := a.register(t, "Amy", "amy@example.com")

	w := a.do(t, http.MethodPut, "/api/v1/shopping-list", token, gin.H{
		"items": []gin.H{
			{"foodItemId": "f1", "name": "milk", "quantity": 1, "unit": "liter", "checked": false},
			{"foodItemId": "f2", "name": "eggs", "quantity": 12, "unit": "", "checked": true},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp listResponse
	decode(t, w, &resp)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "milk", resp.Items[0].Name)
	assert.True(t, resp.Items[1].Checked)
}

func TestFinishShopEndpoint(t *testing.T) {
	a := newTestAPI(t)
	token := a.register(t, "Amy", "amy@example.com")
	foodItemID, planID := seedPlan(t, a, token, 2, "cup")

	w := a.do(t, http.MethodPost, "/api/v1/shopping-list/generate", token, gin.H{
		"mealPlanIds": []string{planID},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPatch, "/api/v1/shopping-list/items/"+foodItemID+"/check", token, gin.H{
		"checked": true,
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/shopping-list/finish", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	decode(t, w, &resp)
	assert.Empty(t, resp.Items)
}

func TestActiveShoppersEndpoint(t *testing.T) {
	a := newTestAPI(t)
	token := a.register(t, "Amy", "amy@example.com")

	// No list yet.
	w := a.do(t, http.MethodGet, "/api/v1/shopping-list/shoppers", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodPut, "/api/v1/shopping-list", token, gin.H{"items": []gin.H{}})
	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	decode(t, w, &resp)

	presence := a.hub.Client().Channel(session.ChannelName(resp.ID)).Presence()
	require.NoError(t, presence.Enter(context.Background(), types.ActiveUser{Email: "bob@example.com", Name: "Bob"}))

	w = a.do(t, http.MethodGet, "/api/v1/shopping-list/shoppers", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var shoppers struct {
		Shoppers []types.ActiveUser `json:"shoppers"`
	}
	decode(t, w, &shoppers)
	require.Len(t, shoppers.Shoppers, 1)
	assert.Equal(t, "bob@example.com", shoppers.Shoppers[0].Email)
}

func TestResolveConflictEndpoint(t *testing.T) {
	a := newTestAPI(t)
	token := a.register(t, "Amy", "amy@example.com")

	// Seed a list with one item, then resolve against it.
	w := a.do(t, http.MethodPut, "/api/v1/shopping-list", token, gin.H{
		"items": []gin.H{
			{"foodItemId": "f1", "name": "sugar", "quantity": 2, "unit": "cup", "checked": false},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/shopping-list/conflicts/resolve", token, gin.H{
		"foodItemId": "f1",
		"quantity":   900,
		"unit":       "gram",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp listResponse
	decode(t, w, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 900.0, resp.Items[0].Quantity)
	assert.Equal(t, "gram", resp.Items[0].Unit)

	w = a.do(t, http.MethodPost, "/api/v1/shopping-list/conflicts/resolve", token, gin.H{
		"foodItemId": "missing",
		"quantity":   1,
		"unit":       "cup",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
