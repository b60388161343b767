// Package campaigns manages recruitment campaigns: the public click
// tracking path and the admin CRUD + conversion funnel rollup.
package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"gorm.io/gorm"
)

// Service handles campaign business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new campaign service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create creates a campaign. The case reference must be globally unique;
// it becomes the public attribution key and is immutable afterwards.
func (s *Service) Create(ctx context.Context, req models.CreateCampaignRequest) (*models.Campaign, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("case_ref = ?", req.CaseRef).Count(&count).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	if count > 0 {
		return nil, domain.NewConflictError("Case ref already exists")
	}

	campaign := models.Campaign{
		Name:    req.Name,
		CaseRef: req.CaseRef,
		Channel: req.Channel,
		Notes:   req.Notes,
		Active:  true,
	}
	if req.Launched {
		now := time.Now()
		campaign.LaunchedAt = &now
	}

	if err := s.db.WithContext(ctx).Create(&campaign).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &campaign, nil
}

// Update applies a partial update by id. The case reference is not
// updatable; marking launched stamps LaunchedAt once.
func (s *Service) Update(ctx context.Context, req models.UpdateCampaignRequest) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.db.WithContext(ctx).First(&campaign, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("campaign")
		}
		return nil, domain.NewInternalError(err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Channel != nil {
		updates["channel"] = *req.Channel
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.Launched != nil && *req.Launched {
		updates["launched_at"] = time.Now()
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&campaign).Updates(updates).Error; err != nil {
			return nil, domain.NewInternalError(err)
		}
	}
	return &campaign, nil
}

// Delete removes a campaign by id.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Campaign{}, id)
	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("campaign")
	}
	return nil
}

// RecordClick stores one anonymous click against the campaign matching
// caseRef. Unknown references write nothing; no personal data is stored.
func (s *Service) RecordClick(ctx context.Context, caseRef string) error {
	if strings.TrimSpace(caseRef) == "" {
		return domain.NewValidationError("ref is required")
	}

	var campaign models.Campaign
	if err := s.db.WithContext(ctx).Where("case_ref = ?", caseRef).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("campaign")
		}
		return domain.NewInternalError(err)
	}

	click := models.CampaignClick{CampaignID: campaign.ID}
	if err := s.db.WithContext(ctx).Create(&click).Error; err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

// ComputeFunnels joins every campaign to its click count and to the
// recruits it can claim, grouped by pipeline stage. Recruits match on
// referredById == caseRef, or on a "ref: <caseRef>" marker in the notes
// field — the fallback path for older rows that only encoded the
// reference in free text. Campaigns come back newest first, and a
// campaign with no clicks and no recruits still appears with a
// zero-valued funnel. Recomputed in full on every call; the record
// counts here are tens to low hundreds.
func (s *Service) ComputeFunnels(ctx context.Context) ([]models.CampaignFunnel, error) {
	var campaigns []models.Campaign
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	type clickCount struct {
		CampaignID uint
		Count      int
	}
	var clicks []clickCount
	if err := s.db.WithContext(ctx).Model(&models.CampaignClick{}).
		Select("campaign_id, COUNT(*) as count").
		Group("campaign_id").
		Scan(&clicks).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	clicksByID := make(map[uint]int, len(clicks))
	for _, c := range clicks {
		clicksByID[c.CampaignID] = c.Count
	}

	var recruits []models.Recruit
	if err := s.db.WithContext(ctx).
		Select("referred_by_id", "stage", "notes").
		Find(&recruits).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	funnels := make([]models.CampaignFunnel, 0, len(campaigns))
	for _, campaign := range campaigns {
		marker := fmt.Sprintf("ref: %s", campaign.CaseRef)

		byStage := map[string]int{}
		total := 0
		for _, r := range recruits {
			matched := (r.ReferredByID != nil && *r.ReferredByID == campaign.CaseRef) ||
				(r.Notes != nil && strings.Contains(*r.Notes, marker))
			if !matched {
				continue
			}
			byStage[r.Stage]++
			total++
		}

		funnels = append(funnels, models.CampaignFunnel{
			Campaign:   campaign,
			ClickCount: clicksByID[campaign.ID],
			Funnel:     models.FunnelStats{Total: total, ByStage: byStage},
		})
	}

	return funnels, nil
}
