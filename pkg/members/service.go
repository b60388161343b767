// Package members manages camp accounts and their profiles: the roster,
// member-editable profile data, and the admin flag with its safety guards.
package members

import (
	"context"
	"errors"
	"time"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"github.com/dustward/campbase/pkg/phone"
	"gorm.io/gorm"
)

// Service handles member and user business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new member service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetProfile returns the profile for a user, creating an empty one on
// first access so the profile form always has a row to edit.
func (s *Service) GetProfile(ctx context.Context, userID uint) (*models.Member, error) {
	var member models.Member
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		member = models.Member{UserID: userID, Status: "active"}
		if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
			return nil, domain.NewInternalError(err)
		}
		return &member, nil
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &member, nil
}

// UpdateProfile upserts the member profile with the fields present in
// the request. Setting a playa name also renames the account: the roster
// and activity feed show playa names, and keeping them in one place
// caused drift before.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.Member, error) {
	member, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.PlayaName != nil {
		updates["playa_name"] = *req.PlayaName
	}
	if req.Pronouns != nil {
		updates["pronouns"] = *req.Pronouns
	}
	if req.HomeBase != nil {
		updates["home_base"] = *req.HomeBase
	}
	if req.Phone != nil {
		updates["phone"] = normalizePhone(*req.Phone)
	}
	if req.EmergencyContact != nil {
		updates["emergency_contact"] = *req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		updates["emergency_phone"] = normalizePhone(*req.EmergencyPhone)
	}
	if req.Vehicle != nil {
		updates["vehicle"] = *req.Vehicle
	}
	if req.ArrivalDate != nil {
		updates["arrival_date"] = *req.ArrivalDate
	}
	if req.DepartureDate != nil {
		updates["departure_date"] = *req.DepartureDate
	}
	if req.CampingSetup != nil {
		updates["camping_setup"] = *req.CampingSetup
	}
	if req.CampRole != nil {
		updates["camp_role"] = *req.CampRole
	}
	if req.DietaryNotes != nil {
		updates["dietary_notes"] = *req.DietaryNotes
	}
	if req.HasTicket != nil {
		updates["has_ticket"] = *req.HasTicket
	}
	if req.TicketSource != nil {
		updates["ticket_source"] = *req.TicketSource
	}
	if req.HasVehiclePass != nil {
		updates["has_vehicle_pass"] = *req.HasVehiclePass
	}
	if req.VehiclePassSource != nil {
		updates["vehicle_pass_source"] = *req.VehiclePassSource
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(member).Updates(updates).Error; err != nil {
			return err
		}
		if req.PlayaName != nil && *req.PlayaName != "" {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("name", *req.PlayaName).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	return s.GetProfile(ctx, userID)
}

// ListUsers returns the roster, playa names included where set.
func (s *Service) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Preload("Member").Order("name ASC").Find(&users).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		summary := models.UserSummary{
			ID:      u.ID,
			Email:   u.Email,
			Name:    u.Name,
			IsAdmin: u.IsAdmin,
		}
		if u.Member != nil {
			summary.PlayaName = u.Member.PlayaName
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListMembers returns full member profiles with their accounts, for the
// admin roster view.
func (s *Service) ListMembers(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := s.db.WithContext(ctx).Preload("User").Order("playa_name ASC").Find(&members).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return members, nil
}

// SetAdmin toggles a user's admin flag. Two guards keep the camp from
// locking itself out: an admin cannot demote themselves, and the last
// remaining admin cannot be demoted by anyone.
func (s *Service) SetAdmin(ctx context.Context, actorID uint, req models.SetAdminRequest) (*models.User, error) {
	if req.IsAdmin == nil {
		return nil, domain.NewValidationError("isAdmin is required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, domain.NewInternalError(err)
	}

	if !*req.IsAdmin && user.IsAdmin {
		if user.ID == actorID {
			return nil, domain.NewForbiddenError("You cannot remove your own admin access")
		}
		var admins int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("is_admin = ?", true).Count(&admins).Error; err != nil {
			return nil, domain.NewInternalError(err)
		}
		if admins <= 1 {
			return nil, domain.NewForbiddenError("Cannot demote the last admin")
		}
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("is_admin", *req.IsAdmin).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	user.IsAdmin = *req.IsAdmin
	return &user, nil
}

// DeleteUser removes an account and its profile. Self-deletion is
// refused; use another admin.
func (s *Service) DeleteUser(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return domain.NewForbiddenError("You cannot delete your own account")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("user")
		}
		return domain.NewInternalError(err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Member{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

// normalizePhone is best-effort: members type free text here and a
// rejected save over formatting would lose the rest of the profile.
func normalizePhone(raw string) string {
	if raw == "" {
		return raw
	}
	if normalized, err := phone.Normalize(raw, "US"); err == nil {
		return normalized
	}
	return raw
}
