package types

// ExtractedItem is the intermediate (foodItemId, quantity, unit) triple
// produced by resolving meal-plan and recipe references. It is never
// persisted; combination happens downstream.
type ExtractedItem struct {
	FoodItemID string  `json:"foodItemId"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
}

// UnitSubtotal is the same-unit sum for one distinct unit string inside a
// conflict's breakdown.
type UnitSubtotal struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Conflict describes one ingredient that received contributions in two or
// more distinct units. Exactly one conflict is emitted per such
// ingredient, no matter how many units are involved. When every
// contributing unit belongs to one convertibility family the conflict is
// auto-converted and carries a suggested total; otherwise the suggestion
// fields are absent and the user has to resolve it by hand.
type Conflict struct {
	FoodItemID        string          `json:"foodItemId"`
	Items             []ExtractedItem `json:"items"`
	UnitBreakdown     []UnitSubtotal  `json:"unitBreakdown"`
	IsAutoConverted   bool            `json:"isAutoConverted"`
	SuggestedQuantity *float64        `json:"suggestedQuantity,omitempty"`
	SuggestedUnit     string          `json:"suggestedUnit,omitempty"`
}
