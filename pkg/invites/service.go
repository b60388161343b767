// Package invites manages single-use invite codes for account creation.
package invites

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"gorm.io/gorm"
)

// Code alphabet omits 0/O/1/I: codes get read aloud and retyped from
// paper at the playa.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Codes read PREFIX-XXXXXXXX; prefixes rotate through camp vocabulary.
var codePrefixes = []string{"DUST", "GLOW", "SPARK", "PLAYA", "DISCO", "CAMP"}

const codeSuffixLen = 8

// Service handles invite code business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new invite service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func randomCode() (string, error) {
	prefixIdx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codePrefixes))))
	if err != nil {
		return "", err
	}

	suffix := make([]byte, codeSuffixLen)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}

	return fmt.Sprintf("%s-%s", codePrefixes[prefixIdx.Int64()], suffix), nil
}

// Generate mints count fresh codes. Collisions retry; with an 8-char
// suffix they are effectively impossible but the unique index backstops.
func (s *Service) Generate(ctx context.Context, count int) ([]models.InviteCode, error) {
	if count < 1 || count > 50 {
		return nil, domain.NewValidationError("count must be between 1 and 50")
	}

	codes := make([]models.InviteCode, 0, count)
	for len(codes) < count {
		code, err := randomCode()
		if err != nil {
			return nil, domain.NewInternalError(err)
		}

		invite := models.InviteCode{Code: code}
		if err := s.db.WithContext(ctx).Create(&invite).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, domain.NewInternalError(err)
		}
		codes = append(codes, invite)
	}
	return codes, nil
}

// List returns all codes, unused first, newest within each group.
func (s *Service) List(ctx context.Context) ([]models.InviteCode, error) {
	var codes []models.InviteCode
	err := s.db.WithContext(ctx).
		Order("used_at IS NOT NULL").
		Order("created_at DESC").
		Find(&codes).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return codes, nil
}

// Redeem marks a code as used by userID. A used or unknown code fails
// with the same generic validation error so the endpoint cannot be used
// to probe which codes exist.
func (s *Service) Redeem(ctx context.Context, code string, userID uint) error {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&models.InviteCode{}).
		Where("code = ? AND used_by_id IS NULL", code).
		Updates(map[string]interface{}{
			"used_by_id": userID,
			"used_at":    now,
		})
	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewValidationError("Invalid invite code")
	}
	return nil
}

// Valid reports whether code exists and is unused, without consuming it.
// The registration form checks this before asking for a password.
func (s *Service) Valid(ctx context.Context, code string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.InviteCode{}).
		Where("code = ? AND used_by_id IS NULL", code).
		Count(&count).Error
	if err != nil {
		return false, domain.NewInternalError(err)
	}
	return count > 0, nil
}

// Delete revokes an unused code. Used codes are history and stay.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND used_by_id IS NULL", id).
		Delete(&models.InviteCode{})
	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("invite code")
	}
	return nil
}
