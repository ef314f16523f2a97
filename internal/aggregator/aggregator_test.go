package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryline/backend/internal/types"
)

func TestCombineSumsSameUnitSilently(t *testing.T) {
	result := Combine([]types.ExtractedItem{
		{FoodItemID: "flour", Quantity: 2, Unit: "cup"},
		{FoodItemID: "flour", Quantity: 1.5, Unit: "cup"},
		{FoodItemID: "eggs", Quantity: 3, Unit: "each"},
	})

	require.Len(t, result.CombinedItems, 2)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, types.ExtractedItem{FoodItemID: "flour", Quantity: 3.5, Unit: "cup"}, result.CombinedItems[0])
	assert.Equal(t, types.ExtractedItem{FoodItemID: "eggs", Quantity: 3, Unit: "each"}, result.CombinedItems[1])
}

func TestCombineIsIdempotentOnCombinedOutput(t *testing.T) {
	first := Combine([]types.ExtractedItem{
		{FoodItemID: "flour", Quantity: 2, Unit: "cup"},
		{FoodItemID: "flour", Quantity: 1, Unit: "cup"},
		{FoodItemID: "sugar", Quantity: 0.5, Unit: "cup"},
	})
	second := Combine(first.CombinedItems)

	assert.Equal(t, first.CombinedItems, second.CombinedItems)
	assert.Empty(t, second.Conflicts)
}

func TestCombineAutoConvertsSingleFamily(t *testing.T) {
	result := Combine([]types.ExtractedItem{
		{FoodItemID: "milk", Quantity: 2, Unit: "cup"},
		{FoodItemID: "milk", Quantity: 1, Unit: "pint"},
	})

	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.Equal(t, "milk", conflict.FoodItemID)
	assert.True(t, conflict.IsAutoConverted)
	require.NotNil(t, conflict.SuggestedQuantity)
	assert.InDelta(t, 4, *conflict.SuggestedQuantity, 1e-9)
	assert.Equal(t, "cup", conflict.SuggestedUnit)

	require.Len(t, conflict.UnitBreakdown, 2)
	assert.Equal(t, types.UnitSubtotal{Quantity: 2, Unit: "cup"}, conflict.UnitBreakdown[0])
	assert.Equal(t, types.UnitSubtotal{Quantity: 1, Unit: "pint"}, conflict.UnitBreakdown[1])

	// Placeholder combined item keeps the first-seen unit subtotal.
	require.Len(t, result.CombinedItems, 1)
	assert.Equal(t, types.ExtractedItem{FoodItemID: "milk", Quantity: 2, Unit: "cup"}, result.CombinedItems[0])
}

func TestCombineFlagsNonConvertibleUnits(t *testing.T) {
	result := Combine([]types.ExtractedItem{
		{FoodItemID: "tomatoes", Quantity: 2, Unit: "can"},
		{FoodItemID: "tomatoes", Quantity: 1, Unit: "pound"},
	})

	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.False(t, conflict.IsAutoConverted)
	assert.Nil(t, conflict.SuggestedQuantity)
	assert.Empty(t, conflict.SuggestedUnit)
	assert.Len(t, conflict.UnitBreakdown, 2)
}

func TestCombineEmitsOneConflictForManyUnits(t *testing.T) {
	result := Combine([]types.ExtractedItem{
		{FoodItemID: "milk", Quantity: 1, Unit: "cup"},
		{FoodItemID: "milk", Quantity: 2, Unit: "tablespoon"},
		{FoodItemID: "milk", Quantity: 1, Unit: "pint"},
		{FoodItemID: "milk", Quantity: 3, Unit: "teaspoon"},
	})

	require.Len(t, result.Conflicts, 1)
	assert.Len(t, result.Conflicts[0].UnitBreakdown, 4)
	assert.Len(t, result.Conflicts[0].Items, 4)
}

func TestCombineSumsPerUnitWithinConflict(t *testing.T) {
	result := Combine([]types.ExtractedItem{
		{FoodItemID: "milk", Quantity: 1, Unit: "cup"},
		{FoodItemID: "milk", Quantity: 2, Unit: "cup"},
		{FoodItemID: "milk", Quantity: 1, Unit: "pint"},
	})

	require.Len(t, result.Conflicts, 1)
	breakdown := result.Conflicts[0].UnitBreakdown
	require.Len(t, breakdown, 2)
	assert.Equal(t, types.UnitSubtotal{Quantity: 3, Unit: "cup"}, breakdown[0])
}

func TestCombineTreatsAliasesAsOneUnit(t *testing.T) {
	result := Combine([]types.ExtractedItem{
		{FoodItemID: "flour", Quantity: 1, Unit: "cups"},
		{FoodItemID: "flour", Quantity: 2, Unit: "Cup"},
	})

	assert.Empty(t, result.Conflicts)
	require.Len(t, result.CombinedItems, 1)
	assert.Equal(t, 3.0, result.CombinedItems[0].Quantity)
}

func TestCombineSameUnknownUnitStillSums(t *testing.T) {
	result := Combine([]types.ExtractedItem{
		{FoodItemID: "beans", Quantity: 2, Unit: "can"},
		{FoodItemID: "beans", Quantity: 1, Unit: "can"},
	})

	assert.Empty(t, result.Conflicts)
	require.Len(t, result.CombinedItems, 1)
	assert.Equal(t, 3.0, result.CombinedItems[0].Quantity)
}

func TestCombineDoesNotMutateInput(t *testing.T) {
	input := []types.ExtractedItem{
		{FoodItemID: "flour", Quantity: 2, Unit: "Cups"},
		{FoodItemID: "flour", Quantity: 1, Unit: "cup"},
	}
	_ = Combine(input)

	assert.Equal(t, "Cups", input[0].Unit)
	assert.Equal(t, 2.0, input[0].Quantity)
}
