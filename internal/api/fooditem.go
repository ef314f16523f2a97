package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/service"
)

type FoodItemHandler struct {
	foodItems service.IFoodItemService
}

func NewFoodItemHandler(foodItems service.IFoodItemService) *FoodItemHandler {
	return &FoodItemHandler{foodItems: foodItems}
}

func (h *FoodItemHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	items := router.Group("/food-items", auth)
	{
		items.GET("", h.ListFoodItems)
		items.GET("/:id", h.GetFoodItem)
		items.POST("", h.CreateFoodItem)
		items.PUT("/:id", h.UpdateFoodItem)
		items.DELETE("/:id", h.DeleteFoodItem)
	}
}

func (h *FoodItemHandler) ListFoodItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	items, err := h.foodItems.ListFoodItems(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_items": items})
}

func (h *FoodItemHandler) GetFoodItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food item id"})
		return
	}
	item, err := h.foodItems.GetFoodItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "food item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *FoodItemHandler) CreateFoodItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var item models.FoodItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.SingularName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "singular_name is required"})
		return
	}
	item.ID = uuid.Nil
	item.UserID = userID

	created, err := h.foodItems.CreateFoodItem(c.Request.Context(), &item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create food item"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FoodItemHandler) UpdateFoodItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food item id"})
		return
	}

	var item models.FoodItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.foodItems.UpdateFoodItem(c.Request.Context(), id, &item)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update food item"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *FoodItemHandler) DeleteFoodItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food item id"})
		return
	}
	if err := h.foodItems.DeleteFoodItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete food item"})
		return
	}
	c.Status(http.StatusNoContent)
}
