package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/service"
	"github.com/pantryline/backend/internal/types"
)

type ShoppingListHandler struct {
	lists service.IShoppingListService
}

func NewShoppingListHandler(lists service.IShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{lists: lists}
}

// RegisterRoutes mounts the shopping list surface. generateLimiter may be
// nil when no Redis-backed limiter is configured.
func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, generateLimiter gin.HandlerFunc) {
	list := router.Group("/shopping-list", auth)
	{
		generateHandlers := []gin.HandlerFunc{}
		if generateLimiter != nil {
			generateHandlers = append(generateHandlers, generateLimiter)
		}
		generateHandlers = append(generateHandlers, h.Generate)

		list.POST("/generate", generateHandlers...)
		list.GET("", h.GetList)
		list.PUT("", h.ReplaceList)
		list.PATCH("/items/:foodItemId/check", h.CheckItem)
		list.DELETE("/items/:foodItemId", h.DeleteItem)
		list.POST("/conflicts/resolve", h.ResolveConflict)
		list.POST("/finish", h.FinishShop)
		list.GET("/shoppers", h.ActiveShoppers)
	}
}

func listResponse(list *models.ShoppingList, conflicts []types.Conflict) gin.H {
	if conflicts == nil {
		conflicts = []types.Conflict{}
	}
	return gin.H{
		"id":        list.ID,
		"items":     models.WireItems(list.Items),
		"conflicts": conflicts,
	}
}

func (h *ShoppingListHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.GenerateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, conflicts, err := h.lists.Generate(c.Request.Context(), userID, req.MealPlanIDs, currentEmail(c))
	if err != nil {
		if errors.Is(err, service.ErrNoMealPlans) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no matching meal plans"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate shopping list"})
		return
	}

	c.JSON(http.StatusOK, listResponse(list, conflicts))
}

func (h *ShoppingListHandler) GetList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.lists.GetList(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shopping list"})
		return
	}
	c.JSON(http.StatusOK, listResponse(list, nil))
}

func (h *ShoppingListHandler) ReplaceList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ReplaceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.lists.ReplaceList(c.Request.Context(), userID, req.Items, currentEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to replace shopping list"})
		return
	}
	c.JSON(http.StatusOK, listResponse(list, nil))
}

func (h *ShoppingListHandler) CheckItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CheckItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.lists.CheckItem(c.Request.Context(), userID, c.Param("foodItemId"), *req.Checked, currentEmail(c))
	if err != nil {
		h.writeItemError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) DeleteItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := h.lists.DeleteItem(c.Request.Context(), userID, c.Param("foodItemId"), currentEmail(c))
	if err != nil {
		h.writeItemError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) ResolveConflict(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.lists.ResolveConflict(c.Request.Context(), userID, &req, currentEmail(c))
	if err != nil {
		h.writeItemError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(list, nil))
}

func (h *ShoppingListHandler) FinishShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.lists.FinishShop(c.Request.Context(), userID, currentEmail(c))
	if err != nil {
		if errors.Is(err, service.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finish shop"})
		return
	}
	c.JSON(http.StatusOK, listResponse(list, nil))
}

func (h *ShoppingListHandler) ActiveShoppers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.lists.GetList(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shopping list"})
		return
	}

	shoppers, err := h.lists.ActiveShoppers(c.Request.Context(), list.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch active shoppers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shoppers": shoppers})
}

func (h *ShoppingListHandler) writeItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrListNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "shopping list item not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update shopping list"})
	}
}
