// Package merger folds freshly aggregated triples into a persisted
// shopping list, preserving the display state (name, checked) the list
// already carries.
package merger

import (
	"github.com/pantryline/backend/internal/aggregator"
	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/types"
)

// Names is the singular/plural pair used to label an item the first time
// it lands on the list.
type Names struct {
	Singular string
	Plural   string
}

// NameLookup maps food item ids to display names.
type NameLookup map[string]Names

// Result is the output of Merge. Items is a fresh slice; inputs are never
// mutated.
type Result struct {
	Items     []models.ShoppingListItem
	Conflicts []types.Conflict
}

// Merge treats the existing items as contributions alongside the
// extracted ones and runs the same grouping/convertibility logic over
// their union. Existing ingredients keep their name and checked flag —
// also while an auto-converted conflict awaits resolution; new
// ingredients arrive unchecked with a name from the lookup, pluralized
// when the resulting quantity isn't exactly 1. Same-unit accumulation
// across existing and extracted never surfaces as a conflict.
func Merge(existing []models.ShoppingListItem, extracted []types.ExtractedItem, names NameLookup) Result {
	contributions := make([]types.ExtractedItem, 0, len(existing)+len(extracted))
	for _, item := range existing {
		contributions = append(contributions, types.ExtractedItem{
			FoodItemID: item.FoodItemID,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
		})
	}
	contributions = append(contributions, extracted...)

	combined := aggregator.Combine(contributions)

	// First existing occurrence per id owns the display state.
	keep := make(map[string]models.ShoppingListItem, len(existing))
	for _, item := range existing {
		if _, ok := keep[item.FoodItemID]; !ok {
			keep[item.FoodItemID] = item
		}
	}

	items := make([]models.ShoppingListItem, 0, len(combined.CombinedItems))
	for pos, ci := range combined.CombinedItems {
		merged := models.ShoppingListItem{
			FoodItemID: ci.FoodItemID,
			Quantity:   ci.Quantity,
			Unit:       ci.Unit,
			Position:   pos,
		}
		if prev, ok := keep[ci.FoodItemID]; ok {
			merged.Name = prev.Name
			merged.Checked = prev.Checked
		} else {
			merged.Name = displayName(ci, names)
		}
		items = append(items, merged)
	}

	return Result{Items: items, Conflicts: combined.Conflicts}
}

func displayName(item types.ExtractedItem, names NameLookup) string {
	n, ok := names[item.FoodItemID]
	if !ok {
		// No catalog entry; the id is better than an empty label.
		return item.FoodItemID
	}
	if item.Quantity != 1 && n.Plural != "" {
		return n.Plural
	}
	return n.Singular
}
