// Package announcements manages the short-lived banner messages shown to
// members.
package announcements

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"gorm.io/gorm"
)

// Announcements expire between 1 and 30 days out, 7 by default.
const (
	minExpiryDays     = 1
	maxExpiryDays     = 30
	defaultExpiryDays = 7
	maxMessageLen     = 140
)

// Service handles announcement business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new announcement service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListActive returns unexpired announcements, newest first.
func (s *Service) ListActive(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("expires_at > ?", time.Now()).
		Order("created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return announcements, nil
}

// Create posts an announcement. Messages are capped at 140 characters
// and the expiry window is clamped to 1-30 days.
func (s *Service) Create(ctx context.Context, authorID uint, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domain.NewValidationError("message is required")
	}
	if len([]rune(message)) > maxMessageLen {
		return nil, domain.NewValidationError("message is limited to 140 characters")
	}

	days := req.ExpiresInDays
	if days == 0 {
		days = defaultExpiryDays
	}
	if days < minExpiryDays {
		days = minExpiryDays
	}
	if days > maxExpiryDays {
		days = maxExpiryDays
	}

	color := req.Color
	if color == "" {
		color = "indigo"
	}

	announcement := models.Announcement{
		Message:   message,
		Emoji:     req.Emoji,
		Color:     color,
		AuthorID:  authorID,
		ExpiresAt: time.Now().AddDate(0, 0, days),
	}
	if err := s.db.WithContext(ctx).Create(&announcement).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &announcement, nil
}

// Delete takes an announcement down before it expires. Members may only
// remove their own; admins may remove any.
func (s *Service) Delete(ctx context.Context, id, userID uint, isAdmin bool) error {
	var announcement models.Announcement
	if err := s.db.WithContext(ctx).First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("announcement")
		}
		return domain.NewInternalError(err)
	}

	if !isAdmin && announcement.AuthorID != userID {
		return domain.NewForbiddenError("You can only remove your own announcements")
	}

	if err := s.db.WithContext(ctx).Delete(&announcement).Error; err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

// PurgeExpired deletes announcements past their expiry. Run nightly;
// ListActive already filters them out, this just keeps the table small.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.Announcement{})
	if result.Error != nil {
		return 0, domain.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}
