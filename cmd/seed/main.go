// Seeds a demo account with a small food item catalog, a couple of
// recipes and a meal plan, so a fresh deployment has something to
// generate a shopping list from.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/pantryline/backend/config"
	"github.com/pantryline/backend/internal/database"
	"github.com/pantryline/backend/internal/logging"
	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/service"
	"github.com/pantryline/backend/internal/types"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger, err := logging.New(false)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	ctx := context.Background()
	authSvc := service.NewAuthService(db, cfg.JWTSecret)

	if _, err := authSvc.Register(ctx, "Demo Shopper", "demo@pantryline.dev", "demo-password"); err != nil {
		log.Fatalf("failed to seed demo user: %v", err)
	}
	var user models.User
	if err := db.Where("email = ?", "demo@pantryline.dev").First(&user).Error; err != nil {
		log.Fatalf("failed to load demo user: %v", err)
	}

	catalog := []models.FoodItem{
		{SingularName: "flour", PluralName: "", Category: "baking", DefaultUnit: "cup", UserID: user.ID},
		{SingularName: "sugar", PluralName: "", Category: "baking", DefaultUnit: "cup", UserID: user.ID},
		{SingularName: "egg", PluralName: "eggs", Category: "dairy", UserID: user.ID},
		{SingularName: "onion", PluralName: "onions", Category: "produce", UserID: user.ID},
		{SingularName: "chicken breast", PluralName: "chicken breasts", Category: "meat", DefaultUnit: "pound", UserID: user.ID},
	}
	for i := range catalog {
		if err := db.Create(&catalog[i]).Error; err != nil {
			log.Fatalf("failed to seed food item %q: %v", catalog[i].SingularName, err)
		}
	}

	dough := models.Recipe{
		Name:     "basic dough",
		Servings: 1,
		UserID:   user.ID,
		IngredientLists: models.IngredientLists{{
			Ingredients: []types.Ingredient{
				{Type: types.IngredientFoodItem, FoodItemID: catalog[0].ID.String(), Quantity: 3, Unit: "cup"},
				{Type: types.IngredientFoodItem, FoodItemID: catalog[2].ID.String(), Quantity: 2},
			},
		}},
	}
	if err := db.Create(&dough).Error; err != nil {
		log.Fatalf("failed to seed recipe: %v", err)
	}

	dinner := models.Recipe{
		Name:     "chicken dinner",
		Servings: 4,
		UserID:   user.ID,
		IngredientLists: models.IngredientLists{{
			Ingredients: []types.Ingredient{
				{Type: types.IngredientFoodItem, FoodItemID: catalog[4].ID.String(), Quantity: 1.5, Unit: "pound"},
				{Type: types.IngredientFoodItem, FoodItemID: catalog[3].ID.String(), Quantity: 2},
				{Type: types.IngredientRecipe, RecipeID: dough.ID.String(), Quantity: 1},
			},
		}},
	}
	if err := db.Create(&dinner).Error; err != nil {
		log.Fatalf("failed to seed recipe: %v", err)
	}

	plan := models.MealPlan{
		Name:   "starter week",
		UserID: user.ID,
		Entries: models.MealPlanEntries{{
			Title: "sunday dinner",
			Items: []types.Ingredient{
				{Type: types.IngredientRecipe, RecipeID: dinner.ID.String(), Quantity: 1},
			},
		}},
	}
	if err := db.Create(&plan).Error; err != nil {
		log.Fatalf("failed to seed meal plan: %v", err)
	}

	log.Printf("seeded demo data: user=%s plan=%s", user.ID, plan.ID)
}
