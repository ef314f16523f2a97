// Package resolver expands meal plans into a flat multiset of
// (foodItemId, quantity, unit) triples, scaling quantities through every
// level of recipe nesting.
package resolver

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/types"
)

// maxDepth caps recipe nesting; deeper chains are treated as failed
// lookups.
const maxDepth = 16

// RecipeLookup fetches a recipe by id. A failure must only kill the
// branch that needed the recipe, never the whole resolution.
type RecipeLookup interface {
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
}

type Resolver struct {
	recipes RecipeLookup
	log     *zap.Logger
}

func New(recipes RecipeLookup, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{recipes: recipes, log: log}
}

// Resolve walks every entry of every plan and emits one triple per leaf
// food-item reference reached. Duplicates are expected; combination is
// the aggregator's job. Top-level entries resolve concurrently, and the
// returned set is complete only once every lookup has settled. Output
// order is not significant.
func (r *Resolver) Resolve(ctx context.Context, plans []models.MealPlan) []types.ExtractedItem {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out []types.ExtractedItem
	)

	for _, plan := range plans {
		for _, entry := range plan.Entries {
			for _, ing := range entry.Items {
				wg.Add(1)
				go func(ing types.Ingredient) {
					defer wg.Done()
					items := r.expand(ctx, ing, 1, nil, 0)
					if len(items) == 0 {
						return
					}
					mu.Lock()
					out = append(out, items...)
					mu.Unlock()
				}(ing)
			}
		}
	}

	wg.Wait()
	if out == nil {
		out = []types.ExtractedItem{}
	}
	return out
}

// expand resolves one ingredient. scale is the cumulative multiplier of
// every recipe quantity on the path from the meal-plan entry down to
// here; visited holds the recipe ids on that path.
func (r *Resolver) expand(ctx context.Context, ing types.Ingredient, scale float64, visited map[string]bool, depth int) []types.ExtractedItem {
	switch ing.Type {
	case types.IngredientFoodItem:
		return []types.ExtractedItem{{
			FoodItemID: ing.FoodItemID,
			Quantity:   quantityOrDefault(ing.Quantity) * scale,
			Unit:       ing.Unit,
		}}

	case types.IngredientGroup:
		// Groups cluster related items; they never scale their contents.
		var out []types.ExtractedItem
		for _, child := range ing.Ingredients {
			out = append(out, r.expand(ctx, child, scale, visited, depth+1)...)
		}
		return out

	case types.IngredientRecipe:
		return r.expandRecipe(ctx, ing.RecipeID, scale*quantityOrDefault(ing.Quantity), visited, depth)

	default:
		r.log.Warn("skipping ingredient with unknown type", zap.String("type", ing.Type))
		return nil
	}
}

func (r *Resolver) expandRecipe(ctx context.Context, id string, scale float64, visited map[string]bool, depth int) []types.ExtractedItem {
	if depth >= maxDepth {
		r.log.Warn("recipe nesting too deep, dropping branch", zap.String("recipe_id", id))
		return nil
	}
	if visited[id] {
		r.log.Warn("recipe reference cycle, dropping branch", zap.String("recipe_id", id))
		return nil
	}

	recipe, err := r.recipes.GetRecipe(ctx, id)
	if err != nil {
		// Local and non-fatal: one bad reference never blocks the list.
		r.log.Warn("recipe lookup failed, dropping branch",
			zap.String("recipe_id", id), zap.Error(err))
		return nil
	}

	// The visited set is path-scoped: copy before extending so sibling
	// branches may legitimately reference the same recipe.
	branch := make(map[string]bool, len(visited)+1)
	for k := range visited {
		branch[k] = true
	}
	branch[id] = true

	var out []types.ExtractedItem
	for _, list := range recipe.IngredientLists {
		for _, child := range list.Ingredients {
			out = append(out, r.expand(ctx, child, scale, branch, depth+1)...)
		}
	}
	return out
}

func quantityOrDefault(q float64) float64 {
	if q <= 0 {
		return 1
	}
	return q
}
