// Package assets tracks camp equipment and supply inventory.
package assets

import (
	"context"
	"errors"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"gorm.io/gorm"
)

// Service handles asset business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new asset service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all inventory, grouped usefully for the UI: category then
// item name.
func (s *Service) List(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	err := s.db.WithContext(ctx).
		Order("category ASC").
		Order("item_name ASC").
		Find(&assets).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return assets, nil
}

// Create adds an inventory item.
func (s *Service) Create(ctx context.Context, req models.CreateAssetRequest) (*models.Asset, error) {
	if req.QtyNeeded < 0 || req.QtyHave < 0 {
		return nil, domain.NewValidationError("quantities cannot be negative")
	}

	category := req.Category
	if category == "" {
		category = "general"
	}

	asset := models.Asset{
		ItemName:         req.ItemName,
		Category:         category,
		QtyNeeded:        req.QtyNeeded,
		QtyHave:          req.QtyHave,
		Custodian:        req.Custodian,
		Condition:        req.Condition,
		StorageLocation:  req.StorageLocation,
		WillBring:        req.WillBring,
		TransportVehicle: req.TransportVehicle,
		Notes:            req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&asset).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &asset, nil
}

// Update applies a partial update. The photo URL is not writable here;
// it only changes through SetPhoto.
func (s *Service) Update(ctx context.Context, req models.UpdateAssetRequest) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.WithContext(ctx).First(&asset, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("asset")
		}
		return nil, domain.NewInternalError(err)
	}

	updates := map[string]interface{}{}
	if req.ItemName != nil {
		updates["item_name"] = *req.ItemName
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.QtyNeeded != nil {
		if *req.QtyNeeded < 0 {
			return nil, domain.NewValidationError("quantities cannot be negative")
		}
		updates["qty_needed"] = *req.QtyNeeded
	}
	if req.QtyHave != nil {
		if *req.QtyHave < 0 {
			return nil, domain.NewValidationError("quantities cannot be negative")
		}
		updates["qty_have"] = *req.QtyHave
	}
	if req.Custodian != nil {
		updates["custodian"] = *req.Custodian
	}
	if req.Condition != nil {
		updates["condition"] = *req.Condition
	}
	if req.StorageLocation != nil {
		updates["storage_location"] = *req.StorageLocation
	}
	if req.WillBring != nil {
		updates["will_bring"] = *req.WillBring
	}
	if req.TransportVehicle != nil {
		updates["transport_vehicle"] = *req.TransportVehicle
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.LastInventoried != nil {
		updates["last_inventoried"] = *req.LastInventoried
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&asset).Updates(updates).Error; err != nil {
			return nil, domain.NewInternalError(err)
		}
	}
	return &asset, nil
}

// SetPhoto records the stored photo URL for an asset after upload.
func (s *Service) SetPhoto(ctx context.Context, id uint, url string) error {
	result := s.db.WithContext(ctx).Model(&models.Asset{}).
		Where("id = ?", id).
		Update("photo_url", url)
	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("asset")
	}
	return nil
}

// Delete removes an inventory item.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Asset{}, id)
	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("asset")
	}
	return nil
}
