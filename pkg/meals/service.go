// Package meals manages the shared meal plan members sign up to cook.
package meals

import (
	"context"
	"errors"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"gorm.io/gorm"
)

// Service handles meal plan business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new meal service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns the full meal plan with the offering member attached.
func (s *Service) List(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Preload("Member").
		Preload("Member.User").
		Order("created_at ASC").
		Find(&meals).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return meals, nil
}

// Create adds a meal offered by memberID.
func (s *Service) Create(ctx context.Context, memberID uint, req models.CreateMealRequest) (*models.Meal, error) {
	portions := req.Portions
	if portions == 0 {
		portions = 1
	}
	if portions < 1 {
		return nil, domain.NewValidationError("portions must be at least 1")
	}

	meal := models.Meal{
		MemberID:    memberID,
		MealName:    req.MealName,
		Portions:    portions,
		DietaryTags: req.DietaryTags,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &meal, nil
}

// Delete removes a meal. Members can pull their own offerings; admins
// can pull anything.
func (s *Service) Delete(ctx context.Context, id, memberID uint, isAdmin bool) error {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("meal")
		}
		return domain.NewInternalError(err)
	}

	if !isAdmin && meal.MemberID != memberID {
		return domain.NewForbiddenError("You can only remove your own meals")
	}

	if err := s.db.WithContext(ctx).Delete(&meal).Error; err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}
