// Package aggregator combines flat extracted-item triples by ingredient
// identity: same-unit contributions sum silently, mixed-unit
// contributions surface as exactly one conflict per ingredient.
package aggregator

import (
	"github.com/pantryline/backend/internal/types"
	"github.com/pantryline/backend/internal/units"
)

// Result is the output of Combine.
type Result struct {
	CombinedItems []types.ExtractedItem `json:"combinedItems"`
	Conflicts     []types.Conflict      `json:"conflicts"`
}

// Combine groups items by food item id, sums same-unit quantities and
// classifies mixed-unit groups. Input is never mutated; combined items
// come back in first-appearance order. Calling Combine on its own
// combined output is a no-op when every ingredient already has a single
// unit.
func Combine(items []types.ExtractedItem) Result {
	order := make([]string, 0, len(items))
	groups := make(map[string][]types.ExtractedItem, len(items))

	for _, item := range items {
		normalized := item
		normalized.Unit = units.Normalize(item.Unit)
		if _, seen := groups[normalized.FoodItemID]; !seen {
			order = append(order, normalized.FoodItemID)
		}
		groups[normalized.FoodItemID] = append(groups[normalized.FoodItemID], normalized)
	}

	result := Result{
		CombinedItems: make([]types.ExtractedItem, 0, len(order)),
		Conflicts:     []types.Conflict{},
	}

	for _, id := range order {
		group := groups[id]
		breakdown := subtotals(group)

		if len(breakdown) == 1 {
			result.CombinedItems = append(result.CombinedItems, types.ExtractedItem{
				FoodItemID: id,
				Quantity:   breakdown[0].Quantity,
				Unit:       breakdown[0].Unit,
			})
			continue
		}

		// Mixed units: the list still carries the ingredient via the
		// first-seen unit's subtotal until the caller resolves it.
		result.CombinedItems = append(result.CombinedItems, types.ExtractedItem{
			FoodItemID: id,
			Quantity:   breakdown[0].Quantity,
			Unit:       breakdown[0].Unit,
		})
		result.Conflicts = append(result.Conflicts, classify(id, group, breakdown))
	}

	return result
}

// subtotals folds a group into per-unit sums, ordered by first appearance
// of each distinct unit string.
func subtotals(group []types.ExtractedItem) []types.UnitSubtotal {
	order := make([]string, 0, 2)
	sums := make(map[string]float64, 2)
	for _, item := range group {
		if _, seen := sums[item.Unit]; !seen {
			order = append(order, item.Unit)
		}
		sums[item.Unit] += item.Quantity
	}

	out := make([]types.UnitSubtotal, len(order))
	for i, unit := range order {
		out[i] = types.UnitSubtotal{Quantity: sums[unit], Unit: unit}
	}
	return out
}

func classify(id string, group []types.ExtractedItem, breakdown []types.UnitSubtotal) types.Conflict {
	conflict := types.Conflict{
		FoodItemID:    id,
		Items:         append([]types.ExtractedItem(nil), group...),
		UnitBreakdown: breakdown,
	}

	amounts := make([]units.Amount, len(breakdown))
	for i, sub := range breakdown {
		amounts[i] = units.Amount{Quantity: sub.Quantity, Unit: sub.Unit}
	}

	if qty, unit, ok := units.Suggest(amounts); ok {
		conflict.IsAutoConverted = true
		conflict.SuggestedQuantity = &qty
		conflict.SuggestedUnit = unit
	}

	return conflict
}
