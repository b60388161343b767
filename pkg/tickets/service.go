// Package tickets manages event ticket and vehicle pass inventory: batch
// creation, assignment, the member request flow, and coverage reporting.
package tickets

import (
	"context"
	"errors"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"gorm.io/gorm"
)

// Service handles ticket business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new ticket service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func validStatus(s string) bool {
	switch s {
	case models.TicketAvailable, models.TicketRequested,
		models.TicketAssigned, models.TicketTransferred:
		return true
	}
	return false
}

// List returns all tickets, newest first.
func (s *Service) List(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return tickets, nil
}

// Create adds count identical tickets (default 1). Steward sales come in
// blocks, so batch create is the normal path.
func (s *Service) Create(ctx context.Context, req models.CreateTicketRequest) ([]models.Ticket, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > 100 {
		return nil, domain.NewValidationError("count must be between 1 and 100")
	}

	status := req.Status
	if status == "" {
		status = models.TicketAvailable
	}
	if !validStatus(status) {
		return nil, domain.NewValidationError("unknown ticket status")
	}

	tickets := make([]models.Ticket, count)
	for i := range tickets {
		tickets[i] = models.Ticket{
			Type:       req.Type,
			Status:     status,
			AssignedTo: req.AssignedTo,
			Price:      req.Price,
			Notes:      req.Notes,
		}
	}
	if err := s.db.WithContext(ctx).Create(&tickets).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return tickets, nil
}

// Update applies a partial update to a ticket.
func (s *Service) Update(ctx context.Context, req models.UpdateTicketRequest) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.WithContext(ctx).First(&ticket, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ticket")
		}
		return nil, domain.NewInternalError(err)
	}

	if req.Status != nil && !validStatus(*req.Status) {
		return nil, domain.NewValidationError("unknown ticket status")
	}

	updates := map[string]interface{}{}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}
	if req.RequestedBy != nil {
		updates["requested_by"] = *req.RequestedBy
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&ticket).Updates(updates).Error; err != nil {
			return nil, domain.NewInternalError(err)
		}
	}
	return &ticket, nil
}

// Delete removes a ticket.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Ticket{}, id)
	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("ticket")
	}
	return nil
}

// Request claims the oldest available ticket of the requested type for
// the member identified by email. The ticket moves to requested and
// holds the member's email until staff confirm or release it.
func (s *Service) Request(ctx context.Context, email string, req models.RequestTicketRequest) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("type = ? AND status = ?", req.Type, models.TicketAvailable).
			Order("created_at ASC").
			First(&ticket).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":       models.TicketRequested,
			"requested_by": email,
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		return tx.Model(&ticket).Updates(updates).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("available ticket")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &ticket, nil
}

// Mine returns the tickets earmarked for or requested by a member's
// email, newest first.
func (s *Service) Mine(ctx context.Context, email string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.db.WithContext(ctx).
		Where("assigned_to = ? OR requested_by = ?", email, email).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return tickets, nil
}

// Availability summarizes open inventory grouped by ticket type.
func (s *Service) Availability(ctx context.Context) ([]models.TicketAvailability, error) {
	var rows []models.TicketAvailability
	err := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Select("type, COUNT(*) as count").
		Where("status = ?", models.TicketAvailable).
		Group("type").
		Order("type ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return rows, nil
}

// Coverage reports every member's ticket and vehicle pass standing, the
// view staff use to chase down who still needs what.
func (s *Service) Coverage(ctx context.Context) ([]models.TicketCoverage, error) {
	var members []models.Member
	err := s.db.WithContext(ctx).Preload("User").Order("playa_name ASC").Find(&members).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	coverage := make([]models.TicketCoverage, 0, len(members))
	for _, m := range members {
		row := models.TicketCoverage{
			MemberID:          m.ID,
			PlayaName:         m.PlayaName,
			HasTicket:         m.HasTicket,
			TicketSource:      m.TicketSource,
			HasVehiclePass:    m.HasVehiclePass,
			VehiclePassSource: m.VehiclePassSource,
		}
		if m.User != nil {
			row.Name = m.User.Name
			row.Email = m.User.Email
		}
		coverage = append(coverage, row)
	}
	return coverage, nil
}
