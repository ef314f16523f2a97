package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryline/backend/config"
	"github.com/pantryline/backend/internal/middleware"
	"github.com/pantryline/backend/internal/resolver"
	"github.com/pantryline/backend/internal/service"
	"github.com/pantryline/backend/internal/session"
)

// Deps bundles everything the API surface needs. S3 and Redis are
// optional; the routes depending on them degrade gracefully when absent.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Transport session.Transport
	S3        *config.S3Config
	JWTSecret string
	Log       *zap.Logger

	GenerateRateLimit  int
	GenerateRateWindow time.Duration
}

// SetupAPI wires services, handlers and routes under /api/v1.
func SetupAPI(router *gin.Engine, deps Deps) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	authService := service.NewAuthService(deps.DB, deps.JWTSecret)
	foodItemService := service.NewFoodItemService(deps.DB)
	recipeService := service.NewRecipeService(deps.DB)
	mealPlanService := service.NewMealPlanService(deps.DB)

	res := resolver.New(service.NewRecipeLookup(recipeService), log)
	shoppingService := service.NewShoppingListService(deps.DB, res, foodItemService, deps.Transport, log)

	var imageService service.IImageService
	if deps.S3 != nil {
		imageService = service.NewImageService(deps.S3, log)
	}

	auth := middleware.AuthMiddleware(authService)

	var generateLimiter gin.HandlerFunc
	if deps.Redis != nil && deps.GenerateRateLimit > 0 {
		limiter := middleware.NewGenerateRateLimiter(deps.Redis, deps.GenerateRateLimit, deps.GenerateRateWindow)
		generateLimiter = limiter.RateLimitMiddleware()
	}

	v1 := router.Group("/api/v1")
	{
		NewAuthHandler(authService).RegisterRoutes(v1)
		NewFoodItemHandler(foodItemService).RegisterRoutes(v1, auth)
		NewRecipeHandler(recipeService, imageService).RegisterRoutes(v1, auth)
		NewMealPlanHandler(mealPlanService).RegisterRoutes(v1, auth)
		NewShoppingListHandler(shoppingService).RegisterRoutes(v1, auth, generateLimiter)
	}
}
