package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/types"
)

var names = NameLookup{
	"f1":    {Singular: "onion", Plural: "onions"},
	"f2":    {Singular: "egg", Plural: "eggs"},
	"flour": {Singular: "flour", Plural: "flour"},
}

func TestMergeAddsNewItemsUnchecked(t *testing.T) {
	result := Merge(nil, []types.ExtractedItem{
		{FoodItemID: "f1", Quantity: 2, Unit: "each"},
		{FoodItemID: "f2", Quantity: 1, Unit: "each"},
	}, names)

	require.Len(t, result.Items, 2)
	assert.Empty(t, result.Conflicts)

	assert.Equal(t, "onions", result.Items[0].Name) // quantity 2 pluralizes
	assert.False(t, result.Items[0].Checked)
	assert.Equal(t, "egg", result.Items[1].Name) // quantity 1 stays singular
	assert.False(t, result.Items[1].Checked)
}

func TestMergeSameUnitAccumulatesSilently(t *testing.T) {
	existing := []models.ShoppingListItem{
		{FoodItemID: "flour", Name: "flour", Quantity: 2, Unit: "cup", Checked: true},
	}
	result := Merge(existing, []types.ExtractedItem{
		{FoodItemID: "flour", Quantity: 1.5, Unit: "cup"},
	}, names)

	require.Len(t, result.Items, 1)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 3.5, result.Items[0].Quantity)
	// Display state survives the merge.
	assert.Equal(t, "flour", result.Items[0].Name)
	assert.True(t, result.Items[0].Checked)
}

func TestMergeMixedUnitsProduceConflict(t *testing.T) {
	// Existing 2 cup + extracted 8 tablespoon of the same ingredient.
	existing := []models.ShoppingListItem{
		{FoodItemID: "f1", Name: "onion", Quantity: 2, Unit: "cup", Checked: true},
	}
	result := Merge(existing, []types.ExtractedItem{
		{FoodItemID: "f1", Quantity: 8, Unit: "tablespoon"},
	}, names)

	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.True(t, conflict.IsAutoConverted)
	require.Len(t, conflict.UnitBreakdown, 2)
	assert.Equal(t, types.UnitSubtotal{Quantity: 2, Unit: "cup"}, conflict.UnitBreakdown[0])
	assert.Equal(t, types.UnitSubtotal{Quantity: 8, Unit: "tablespoon"}, conflict.UnitBreakdown[1])

	// Pending conflicts never reset display state.
	require.Len(t, result.Items, 1)
	assert.Equal(t, "onion", result.Items[0].Name)
	assert.True(t, result.Items[0].Checked)
}

func TestMergeUnknownIdFallsBackToId(t *testing.T) {
	result := Merge(nil, []types.ExtractedItem{
		{FoodItemID: "mystery", Quantity: 1, Unit: "each"},
	}, names)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "mystery", result.Items[0].Name)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := []models.ShoppingListItem{
		{FoodItemID: "flour", Name: "flour", Quantity: 2, Unit: "cup"},
	}
	extracted := []types.ExtractedItem{
		{FoodItemID: "flour", Quantity: 1, Unit: "cup"},
	}
	_ = Merge(existing, extracted, names)

	assert.Equal(t, 2.0, existing[0].Quantity)
	assert.Equal(t, 1.0, extracted[0].Quantity)
}

func TestMergePositionsAreSequential(t *testing.T) {
	result := Merge(nil, []types.ExtractedItem{
		{FoodItemID: "f1", Quantity: 1, Unit: "each"},
		{FoodItemID: "f2", Quantity: 2, Unit: "each"},
		{FoodItemID: "flour", Quantity: 1, Unit: "cup"},
	}, names)

	require.Len(t, result.Items, 3)
	for i, item := range result.Items {
		assert.Equal(t, i, item.Position)
	}
}
