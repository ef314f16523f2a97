package types

// Live session event names. These, and the payload shapes below, are a
// wire contract shared with every client implementation; field names must
// not change.
const (
	EventItemChecked = "item_checked"
	EventListUpdated = "list_updated"
	EventItemDeleted = "item_deleted"
)

// ListItem is the shopping-list item shape carried inside list_updated
// payloads and REST responses.
type ListItem struct {
	FoodItemID string  `json:"foodItemId"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Checked    bool    `json:"checked"`
}

// ItemCheckedEvent mirrors { type, foodItemId, checked, updatedBy }.
type ItemCheckedEvent struct {
	Type       string `json:"type"`
	FoodItemID string `json:"foodItemId"`
	Checked    bool   `json:"checked"`
	UpdatedBy  string `json:"updatedBy"`
}

// ListUpdatedEvent mirrors { type, items, updatedBy }.
type ListUpdatedEvent struct {
	Type      string     `json:"type"`
	Items     []ListItem `json:"items"`
	UpdatedBy string     `json:"updatedBy"`
}

// ItemDeletedEvent mirrors { type, foodItemId, updatedBy }.
type ItemDeletedEvent struct {
	Type       string `json:"type"`
	FoodItemID string `json:"foodItemId"`
	UpdatedBy  string `json:"updatedBy"`
}

// ActiveUser is one member of a session's presence roster.
type ActiveUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
