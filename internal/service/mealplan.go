package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryline/backend/internal/models"
)

// MealPlanService handles meal plan operations
type MealPlanService struct {
	db *gorm.DB
}

func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

func (s *MealPlanService) CreateMealPlan(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error) {
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *MealPlanService) GetMealPlan(ctx context.Context, id uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *MealPlanService) UpdateMealPlan(ctx context.Context, id uuid.UUID, plan *models.MealPlan) (*models.MealPlan, error) {
	if err := s.db.WithContext(ctx).Model(&models.MealPlan{}).Where("id = ?", id).Updates(plan).Error; err != nil {
		return nil, err
	}
	return s.GetMealPlan(ctx, id)
}

func (s *MealPlanService) DeleteMealPlan(ctx context.Context, id uuid.UUID) error {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.MealPlan{}, "id = ?", id).Error
}

func (s *MealPlanService) ListMealPlans(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error) {
	var plans []models.MealPlan
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	result := make([]*models.MealPlan, len(plans))
	for i := range plans {
		result[i] = &plans[i]
	}
	return result, nil
}
