package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryline/backend/internal/merger"
	"github.com/pantryline/backend/internal/models"
)

// FoodItemService handles the food item catalog
type FoodItemService struct {
	db *gorm.DB
}

func NewFoodItemService(db *gorm.DB) *FoodItemService {
	return &FoodItemService{db: db}
}

func (s *FoodItemService) CreateFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *FoodItemService) GetFoodItem(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *FoodItemService) UpdateFoodItem(ctx context.Context, id uuid.UUID, item *models.FoodItem) (*models.FoodItem, error) {
	if err := s.db.WithContext(ctx).Model(&models.FoodItem{}).Where("id = ?", id).Updates(item).Error; err != nil {
		return nil, err
	}
	return s.GetFoodItem(ctx, id)
}

func (s *FoodItemService) DeleteFoodItem(ctx context.Context, id uuid.UUID) error {
	var item models.FoodItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.FoodItem{}, "id = ?", id).Error
}

func (s *FoodItemService) ListFoodItems(ctx context.Context, userID uuid.UUID) ([]*models.FoodItem, error) {
	var items []models.FoodItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("singular_name").Find(&items).Error; err != nil {
		return nil, err
	}
	result := make([]*models.FoodItem, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result, nil
}

// NamesFor loads the singular/plural display names for a set of food item
// ids. Ids that do not parse as uuids or have no catalog entry are simply
// absent from the result.
func (s *FoodItemService) NamesFor(ctx context.Context, ids []string) (merger.NameLookup, error) {
	uuids := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		uuids = append(uuids, parsed)
	}
	if len(uuids) == 0 {
		return merger.NameLookup{}, nil
	}

	var items []models.FoodItem
	if err := s.db.WithContext(ctx).Where("id IN ?", uuids).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(merger.NameLookup, len(items))
	for _, item := range items {
		out[item.ID.String()] = merger.Names{Singular: item.SingularName, Plural: item.PluralName}
	}
	return out, nil
}
