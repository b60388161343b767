// Package dues tracks camp dues: line items, manually recorded payments,
// and per-member amount overrides.
package dues

import (
	"context"
	"errors"
	"time"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"gorm.io/gorm"
)

// Service handles dues business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new dues service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListItems returns all dues items with payments and overrides loaded,
// newest first.
func (s *Service) ListItems(ctx context.Context) ([]models.DuesItem, error) {
	var items []models.DuesItem
	err := s.db.WithContext(ctx).
		Preload("Payments").
		Preload("Payments.User").
		Preload("Overrides").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return items, nil
}

// CreateItem creates a dues line item.
func (s *Service) CreateItem(ctx context.Context, req models.CreateDuesItemRequest) (*models.DuesItem, error) {
	if req.Amount <= 0 {
		return nil, domain.NewValidationError("amount must be positive")
	}

	item := models.DuesItem{
		Name:        req.Name,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Description: req.Description,
		Active:      true,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &item, nil
}

// UpdateItem applies a partial update to a dues item.
func (s *Service) UpdateItem(ctx context.Context, req models.UpdateDuesItemRequest) (*models.DuesItem, error) {
	var item models.DuesItem
	if err := s.db.WithContext(ctx).First(&item, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("dues item")
		}
		return nil, domain.NewInternalError(err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, domain.NewValidationError("amount must be positive")
		}
		updates["amount"] = *req.Amount
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&item).Updates(updates).Error; err != nil {
			return nil, domain.NewInternalError(err)
		}
	}
	return &item, nil
}

// DeleteItem removes a dues item and everything recorded against it.
func (s *Service) DeleteItem(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.DuesItem{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("dues_item_id = ?", id).Delete(&models.DuesPayment{}).Error; err != nil {
			return err
		}
		return tx.Where("dues_item_id = ?", id).Delete(&models.DuesOverride{}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError("dues item")
	}
	if err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

// RecordPayment records a manual payment against a dues item. recordedBy
// is the acting staff account's display name, kept as a string so the
// ledger survives account deletion.
func (s *Service) RecordPayment(ctx context.Context, recordedBy string, req models.RecordPaymentRequest) (*models.DuesPayment, error) {
	if req.Amount <= 0 {
		return nil, domain.NewValidationError("amount must be positive")
	}

	var item models.DuesItem
	if err := s.db.WithContext(ctx).First(&item, req.DuesItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("dues item")
		}
		return nil, domain.NewInternalError(err)
	}

	method := req.Method
	if method == "" {
		method = "venmo"
	}
	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	payment := models.DuesPayment{
		UserID:     req.UserID,
		DuesItemID: req.DuesItemID,
		Amount:     req.Amount,
		Method:     method,
		Note:       req.Note,
		PaidAt:     paidAt,
		RecordedBy: recordedBy,
	}
	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &payment, nil
}

// DeletePayment removes a recorded payment (fat-finger correction path).
func (s *Service) DeletePayment(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.DuesPayment{}, id)
	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("payment")
	}
	return nil
}

// SetOverride sets or replaces the custom amount one member owes on one
// item. An amount of zero waives the item for that member.
func (s *Service) SetOverride(ctx context.Context, req models.OverrideRequest) (*models.DuesOverride, error) {
	if req.Amount < 0 {
		return nil, domain.NewValidationError("amount cannot be negative")
	}

	var item models.DuesItem
	if err := s.db.WithContext(ctx).First(&item, req.DuesItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("dues item")
		}
		return nil, domain.NewInternalError(err)
	}

	var override models.DuesOverride
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND dues_item_id = ?", req.UserID, req.DuesItemID).
		First(&override).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		override = models.DuesOverride{
			UserID:     req.UserID,
			DuesItemID: req.DuesItemID,
			Amount:     req.Amount,
			Reason:     req.Reason,
		}
		if err := s.db.WithContext(ctx).Create(&override).Error; err != nil {
			return nil, domain.NewInternalError(err)
		}
	case err != nil:
		return nil, domain.NewInternalError(err)
	default:
		updates := map[string]interface{}{"amount": req.Amount}
		if req.Reason != nil {
			updates["reason"] = *req.Reason
		}
		if err := s.db.WithContext(ctx).Model(&override).Updates(updates).Error; err != nil {
			return nil, domain.NewInternalError(err)
		}
		override.Amount = req.Amount
	}
	return &override, nil
}

// RemoveOverride puts a member back on the standard amount.
func (s *Service) RemoveOverride(ctx context.Context, userID, duesItemID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND dues_item_id = ?", userID, duesItemID).
		Delete(&models.DuesOverride{})
	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("override")
	}
	return nil
}

// MemberBalance is one user's standing on one dues item.
type MemberBalance struct {
	DuesItemID uint    `json:"duesItemId"`
	ItemName   string  `json:"itemName"`
	Owed       float64 `json:"owed"`
	Paid       float64 `json:"paid"`
	Balance    float64 `json:"balance"`
}

// BalancesFor computes what a user owes across all active items:
// override amount when one exists, the item amount otherwise, minus
// payments. Balance never goes below zero in the response; overpayment
// shows as a zero balance with Paid exceeding Owed.
func (s *Service) BalancesFor(ctx context.Context, userID uint) ([]MemberBalance, error) {
	var items []models.DuesItem
	if err := s.db.WithContext(ctx).Where("active = ?", true).
		Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	var overrides []models.DuesOverride
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Find(&overrides).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	overrideByItem := make(map[uint]float64, len(overrides))
	for _, o := range overrides {
		overrideByItem[o.DuesItemID] = o.Amount
	}

	var payments []models.DuesPayment
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Find(&payments).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	paidByItem := make(map[uint]float64, len(payments))
	for _, p := range payments {
		paidByItem[p.DuesItemID] += p.Amount
	}

	balances := make([]MemberBalance, 0, len(items))
	for _, item := range items {
		owed := item.Amount
		if amount, ok := overrideByItem[item.ID]; ok {
			owed = amount
		}
		paid := paidByItem[item.ID]
		balance := owed - paid
		if balance < 0 {
			balance = 0
		}
		balances = append(balances, MemberBalance{
			DuesItemID: item.ID,
			ItemName:   item.Name,
			Owed:       owed,
			Paid:       paid,
			Balance:    balance,
		})
	}
	return balances, nil
}
