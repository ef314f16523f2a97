package types

// Ingredient kinds. An ingredient read from a recipe or a meal plan is
// exactly one of these; the Type field is the discriminator.
const (
	IngredientFoodItem = "foodItem"
	IngredientRecipe   = "recipe"
	IngredientGroup    = "ingredientGroup"
)

// Ingredient is the tagged union stored inside recipes and meal plans.
// Which fields are meaningful depends on Type:
//   - foodItem: FoodItemID, Quantity, Unit, PrepInstructions
//   - recipe: RecipeID, Quantity (servings multiplier)
//   - ingredientGroup: Title, Ingredients
//
// Ingredients are immutable once read from storage; quantity is a
// positive rational (fractions like 0.5 are expected).
type Ingredient struct {
	Type             string       `json:"type"`
	FoodItemID       string       `json:"foodItemId,omitempty"`
	RecipeID         string       `json:"recipeId,omitempty"`
	Quantity         float64      `json:"quantity,omitempty"`
	Unit             string       `json:"unit,omitempty"`
	PrepInstructions string       `json:"prepInstructions,omitempty"`
	Title            string       `json:"title,omitempty"`
	Ingredients      []Ingredient `json:"ingredients,omitempty"`
}

// IngredientList is a named sub-list of ingredients inside a recipe
// (e.g. "Dressing").
type IngredientList struct {
	Title       string       `json:"title,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
}

// MealPlanEntry is one slot of a meal plan (e.g. "Monday dinner") holding
// the ingredients and recipe references planned for it.
type MealPlanEntry struct {
	Title string       `json:"title,omitempty"`
	Items []Ingredient `json:"items"`
}
