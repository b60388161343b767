// Package analytics records member activity and rolls it up into the
// admin engagement view.
package analytics

import (
	"context"
	"time"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"gorm.io/gorm"
)

// Service handles activity logging and engagement rollups
type Service struct {
	db *gorm.DB
}

// NewService creates a new analytics service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// LogActivity records one action for a user. Best effort from the
// caller's point of view; a lost row just undercounts engagement.
func (s *Service) LogActivity(ctx context.Context, userID uint, req models.LogActivityRequest) error {
	if req.Action == "" {
		return domain.NewValidationError("action is required")
	}

	entry := models.ActivityLog{
		UserID: userID,
		Action: req.Action,
		Detail: req.Detail,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

// RecordLogin bumps a user's login counters.
func (s *Service) RecordLogin(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_at": time.Now(),
			"login_count":   gorm.Expr("login_count + 1"),
		}).Error
	if err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

// RecentActivity returns the latest log rows with their users, for the
// admin activity feed.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.ActivityLog
	err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return entries, nil
}

// Engagement builds the per-user engagement table: login counters plus
// a seven-day action count and the most recent page-view and action.
func (s *Service) Engagement(ctx context.Context) ([]models.EngagementRow, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Preload("Member").
		Order("name ASC").Find(&users).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	weekAgo := time.Now().AddDate(0, 0, -7)

	type actionCount struct {
		UserID uint
		Count  int
	}
	var counts []actionCount
	if err := s.db.WithContext(ctx).Model(&models.ActivityLog{}).
		Select("user_id, COUNT(*) as count").
		Where("created_at >= ?", weekAgo).
		Group("user_id").
		Scan(&counts).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	countByUser := make(map[uint]int, len(counts))
	for _, c := range counts {
		countByUser[c.UserID] = c.Count
	}

	// Recent log slice is enough to find everyone's latest entries.
	var recent []models.ActivityLog
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(1000).
		Find(&recent).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	lastPage := map[uint]*string{}
	lastActivity := map[uint]*string{}
	for _, entry := range recent {
		if entry.Action == "page_view" {
			if _, seen := lastPage[entry.UserID]; !seen {
				lastPage[entry.UserID] = entry.Detail
			}
			continue
		}
		if _, seen := lastActivity[entry.UserID]; !seen {
			action := entry.Action
			lastActivity[entry.UserID] = &action
		}
	}

	rows := make([]models.EngagementRow, 0, len(users))
	for _, u := range users {
		row := models.EngagementRow{
			ID:              u.ID,
			Name:            u.Name,
			Email:           u.Email,
			IsAdmin:         u.IsAdmin,
			LoginCount:      u.LoginCount,
			ActionsThisWeek: countByUser[u.ID],
			LastPage:        lastPage[u.ID],
			LastActivity:    lastActivity[u.ID],
		}
		if u.LastLoginAt != nil {
			formatted := u.LastLoginAt.Format(time.RFC3339)
			row.LastLoginAt = &formatted
		}
		if u.Member != nil {
			row.PlayaName = u.Member.PlayaName
		}
		rows = append(rows, row)
	}
	return rows, nil
}
