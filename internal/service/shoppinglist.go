package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryline/backend/internal/merger"
	"github.com/pantryline/backend/internal/models"
	"github.com/pantryline/backend/internal/resolver"
	"github.com/pantryline/backend/internal/session"
	"github.com/pantryline/backend/internal/types"
)

var (
	ErrListNotFound = errors.New("shopping list not found")
	ErrItemNotFound = errors.New("shopping list item not found")
	ErrNoMealPlans  = errors.New("no matching meal plans")
)

// NameSource resolves food item ids to display names.
type NameSource interface {
	NamesFor(ctx context.Context, ids []string) (merger.NameLookup, error)
}

// ShoppingListService owns the aggregation pipeline and every list
// mutation. Each mutation persists first, then mirrors itself to the
// list's live session channel; a publish failure never rolls back the
// write.
type ShoppingListService struct {
	db        *gorm.DB
	resolver  *resolver.Resolver
	names     NameSource
	transport session.Transport
	log       *zap.Logger
}

func NewShoppingListService(db *gorm.DB, res *resolver.Resolver, names NameSource, transport session.Transport, log *zap.Logger) *ShoppingListService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ShoppingListService{
		db:        db,
		resolver:  res,
		names:     names,
		transport: transport,
		log:       log,
	}
}

// Generate expands the selected meal plans, folds the result into the
// user's list and reports any unit conflicts alongside the saved list.
func (s *ShoppingListService) Generate(ctx context.Context, userID uuid.UUID, mealPlanIDs []uuid.UUID, updatedBy string) (*models.ShoppingList, []types.Conflict, error) {
	var plans []models.MealPlan
	if err := s.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", mealPlanIDs, userID).
		Find(&plans).Error; err != nil {
		return nil, nil, err
	}
	if len(plans) == 0 {
		return nil, nil, ErrNoMealPlans
	}

	extracted := s.resolver.Resolve(ctx, plans)

	list, err := s.loadOrCreateList(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(list.Items)+len(extracted))
	for _, item := range list.Items {
		ids = append(ids, item.FoodItemID)
	}
	for _, item := range extracted {
		ids = append(ids, item.FoodItemID)
	}
	names, err := s.names.NamesFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	merged := merger.Merge(list.Items, extracted, names)

	if err := s.replaceItems(ctx, list, merged.Items); err != nil {
		return nil, nil, err
	}

	s.publishListUpdated(ctx, list, updatedBy)
	return list, merged.Conflicts, nil
}

// GetList returns the user's list with items in position order.
func (s *ShoppingListService) GetList(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("user_id = ?", userID).
		First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListNotFound
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// CheckItem flips one item's checked state and mirrors the change.
func (s *ShoppingListService) CheckItem(ctx context.Context, userID uuid.UUID, foodItemID string, checked bool, updatedBy string) error {
	list, err := s.GetList(ctx, userID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&models.ShoppingListItem{}).
		Where("list_id = ? AND food_item_id = ?", list.ID, foodItemID).
		Update("checked", checked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}

	s.publish(ctx, list.ID, types.EventItemChecked, types.ItemCheckedEvent{
		Type:       types.EventItemChecked,
		FoodItemID: foodItemID,
		Checked:    checked,
		UpdatedBy:  updatedBy,
	})
	return nil
}

// DeleteItem removes one item from the list and mirrors the deletion.
func (s *ShoppingListService) DeleteItem(ctx context.Context, userID uuid.UUID, foodItemID string, updatedBy string) error {
	list, err := s.GetList(ctx, userID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("list_id = ? AND food_item_id = ?", list.ID, foodItemID).
		Delete(&models.ShoppingListItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}

	s.publish(ctx, list.ID, types.EventItemDeleted, types.ItemDeletedEvent{
		Type:       types.EventItemDeleted,
		FoodItemID: foodItemID,
		UpdatedBy:  updatedBy,
	})
	return nil
}

// ReplaceList swaps the list's entire content for the given items.
func (s *ShoppingListService) ReplaceList(ctx context.Context, userID uuid.UUID, items []types.ListItem, updatedBy string) (*models.ShoppingList, error) {
	list, err := s.loadOrCreateList(ctx, userID)
	if err != nil {
		return nil, err
	}

	replacement := make([]models.ShoppingListItem, len(items))
	for pos, item := range items {
		replacement[pos] = models.ShoppingListItem{
			FoodItemID: item.FoodItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			Checked:    item.Checked,
			Position:   pos,
		}
	}

	if err := s.replaceItems(ctx, list, replacement); err != nil {
		return nil, err
	}

	s.publishListUpdated(ctx, list, updatedBy)
	return list, nil
}

// ResolveConflict applies the caller's chosen quantity and unit to the
// conflicted item, then mirrors the full list.
func (s *ShoppingListService) ResolveConflict(ctx context.Context, userID uuid.UUID, req *types.ResolveConflictRequest, updatedBy string) (*models.ShoppingList, error) {
	list, err := s.GetList(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).
		Model(&models.ShoppingListItem{}).
		Where("list_id = ? AND food_item_id = ?", list.ID, req.FoodItemID).
		Updates(map[string]interface{}{"quantity": req.Quantity, "unit": req.Unit})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	list, err = s.GetList(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.publishListUpdated(ctx, list, updatedBy)
	return list, nil
}

// FinishShop moves every checked item into the purchase ledger, leaves
// the unchecked remainder on the list and mirrors the shrunken list.
func (s *ShoppingListService) FinishShop(ctx context.Context, userID uuid.UUID, updatedBy string) (*models.ShoppingList, error) {
	list, err := s.GetList(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range list.Items {
			if !item.Checked {
				continue
			}
			record := models.PurchaseRecord{
				UserID:      userID,
				FoodItemID:  item.FoodItemID,
				Name:        item.Name,
				Quantity:    item.Quantity,
				Unit:        item.Unit,
				PurchasedAt: now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("list_id = ? AND checked = ?", list.ID, true).
			Delete(&models.ShoppingListItem{}).Error; err != nil {
			return err
		}
		// Close the position gaps left by the purchased items.
		remaining := make([]models.ShoppingListItem, 0, len(list.Items))
		for _, item := range list.Items {
			if !item.Checked {
				remaining = append(remaining, item)
			}
		}
		for pos, item := range remaining {
			if item.Position == pos {
				continue
			}
			if err := tx.Model(&models.ShoppingListItem{}).
				Where("id = ?", item.ID).
				Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	list, err = s.GetList(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.publishListUpdated(ctx, list, updatedBy)
	return list, nil
}

// ActiveShoppers reports who is present on the list's session channel.
// Without a transport there is no channel to ask; the roster is empty.
func (s *ShoppingListService) ActiveShoppers(ctx context.Context, listID uuid.UUID) ([]types.ActiveUser, error) {
	if s.transport == nil {
		return []types.ActiveUser{}, nil
	}
	presence := s.transport.Channel(session.ChannelName(listID.String())).Presence()
	members, err := presence.Get(ctx)
	if err != nil {
		return nil, err
	}
	return session.ValidMembers(members), nil
}

// loadOrCreateList returns the user's list, creating an empty one on
// first use. Items come back in position order.
func (s *ShoppingListService) loadOrCreateList(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.GetList(ctx, userID)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, ErrListNotFound) {
		return nil, err
	}

	created := models.ShoppingList{UserID: userID}
	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	created.Items = []models.ShoppingListItem{}
	return &created, nil
}

// replaceItems swaps a list's items in one transaction and refreshes the
// in-memory copy.
func (s *ShoppingListService) replaceItems(ctx context.Context, list *models.ShoppingList, items []models.ShoppingListItem) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.ShoppingListItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = uuid.Nil
			items[i].ListID = list.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(list).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return err
	}
	list.Items = items
	return nil
}

func (s *ShoppingListService) publishListUpdated(ctx context.Context, list *models.ShoppingList, updatedBy string) {
	s.publish(ctx, list.ID, types.EventListUpdated, types.ListUpdatedEvent{
		Type:      types.EventListUpdated,
		Items:     models.WireItems(list.Items),
		UpdatedBy: updatedBy,
	})
}

func (s *ShoppingListService) publish(ctx context.Context, listID uuid.UUID, event string, payload interface{}) {
	if s.transport == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("marshal session event", zap.String("event", event), zap.Error(err))
		return
	}
	channel := s.transport.Channel(session.ChannelName(listID.String()))
	if err := channel.Publish(ctx, event, data); err != nil {
		s.log.Warn("session publish failed",
			zap.String("event", event),
			zap.String("list_id", listID.String()),
			zap.Error(err))
	}
}
