// Package recruits manages the recruit pipeline: public application
// intake and the staff-facing stage workflow.
package recruits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"github.com/dustward/campbase/pkg/phone"
	"gorm.io/gorm"
)

// Service handles recruit business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new recruit service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// displayName derives the short pipeline name from the intake's
// name/pronouns field: everything before the first "/" or ",", trimmed.
// "Jazz Hands / she/her" -> "Jazz Hands".
func displayName(namePronouns string) string {
	if idx := strings.IndexAny(namePronouns, "/,"); idx >= 0 {
		return strings.TrimSpace(namePronouns[:idx])
	}
	return strings.TrimSpace(namePronouns)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SubmitApplication persists the full intake answers and opens a
// pipeline record for the applicant. Both writes run in one transaction:
// an intake row without a pipeline entry would be invisible to staff, so
// either both persist or neither does.
func (s *Service) SubmitApplication(ctx context.Context, req models.ApplicationRequest) (*models.Recruit, error) {
	if strings.TrimSpace(req.NamePronouns) == "" {
		return nil, domain.NewValidationError("Name is required")
	}

	var recruit models.Recruit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		intake := models.RecruitIntake{
			NamePronouns:       req.NamePronouns,
			Email:              nullable(req.Email),
			SocialHandle:       nullable(req.SocialHandle),
			ProjectDescription: nullable(req.ProjectDescription),
			Enthusiasm:         nullable(req.Enthusiasm),
			CampScenario:       nullable(req.CampScenario),
			GentleReminder:     nullable(req.GentleReminder),
			ApproachStrangers:  nullable(req.ApproachStrangers),
			Theatrical:         nullable(req.Theatrical),
			StraightFace:       nullable(req.StraightFace),
			BeingApproached:    nullable(req.BeingApproached),
			IdealBalance:       nullable(req.IdealBalance),
			BurnExperience:     nullable(req.BurnExperience),
			CampingSetup:       nullable(req.CampingSetup),
			SkillsResources:    nullable(req.SkillsResources),
			DuesQuestions:      nullable(req.DuesQuestions),
			AnythingElse:       nullable(req.AnythingElse),
		}
		if err := tx.Create(&intake).Error; err != nil {
			return err
		}

		notes := "Applied via intake form"
		if req.CaseRef != "" {
			notes = fmt.Sprintf("Applied via intake form [ref: %s]", req.CaseRef)
		}

		recruit = models.Recruit{
			Name:         displayName(req.NamePronouns),
			Email:        nullable(req.Email),
			SocialHandle: nullable(req.SocialHandle),
			Stage:        models.StageProspect,
			Confidence:   50,
			IntakeID:     &intake.ID,
			Notes:        &notes,
			ReferredByID: nullable(req.CaseRef),
		}
		return tx.Create(&recruit).Error
	})
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	return &recruit, nil
}

// List returns all recruits, most recently updated first, with intake
// answers and assignee preloaded.
func (s *Service) List(ctx context.Context) ([]models.Recruit, error) {
	var recruits []models.Recruit
	err := s.db.WithContext(ctx).
		Preload("Intake").
		Preload("AssignedTo").
		Order("updated_at DESC").
		Find(&recruits).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return recruits, nil
}

// Create opens a pipeline record directly (staff path, no intake).
func (s *Service) Create(ctx context.Context, req models.CreateRecruitRequest) (*models.Recruit, error) {
	stage := req.Stage
	if stage == "" {
		stage = models.StageProspect
	}
	if !models.ValidStage(stage) {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown stage %q", stage))
	}

	confidence := 50
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	recruit := models.Recruit{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           normalizePhone(req.Phone),
		SocialHandle:    req.SocialHandle,
		Stage:           stage,
		Confidence:      confidence,
		Notes:           req.Notes,
		LastContactDate: req.LastContactDate,
	}
	if err := s.db.WithContext(ctx).Create(&recruit).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &recruit, nil
}

// Update applies only the whitelisted fields carried by the update
// command. Binding already dropped anything else from the payload, so
// an attempt to write id or an arbitrary column is silently ignored
// rather than rejected. Stage values outside the defined set are the
// one thing refused outright.
func (s *Service) Update(ctx context.Context, req models.UpdateRecruitRequest) (*models.Recruit, error) {
	var recruit models.Recruit
	if err := s.db.WithContext(ctx).First(&recruit, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("recruit")
		}
		return nil, domain.NewInternalError(err)
	}

	if req.Stage != nil && !models.ValidStage(*req.Stage) {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown stage %q", *req.Stage))
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = derefOr(normalizePhone(req.Phone), *req.Phone)
	}
	if req.SocialHandle != nil {
		updates["social_handle"] = *req.SocialHandle
	}
	if req.Stage != nil {
		updates["stage"] = *req.Stage
	}
	if req.Confidence != nil {
		updates["confidence"] = *req.Confidence
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.LastContactDate != nil {
		updates["last_contact_date"] = *req.LastContactDate
	}
	if req.AssignedToID != nil {
		updates["assigned_to_id"] = *req.AssignedToID
	}
	if req.ReferredByID != nil {
		updates["referred_by_id"] = *req.ReferredByID
	}

	if err := s.db.WithContext(ctx).Model(&recruit).Updates(updates).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &recruit, nil
}

// Delete removes a recruit by id. The linked intake is kept: it is the
// historical record of what was submitted.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Recruit{}, id)
	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("recruit")
	}
	return nil
}

// normalizePhone converts to E.164 when the number parses; otherwise the
// raw input is kept. Applicants type anything in here.
func normalizePhone(raw *string) *string {
	if raw == nil || *raw == "" {
		return raw
	}
	if normalized, err := phone.Normalize(*raw, "US"); err == nil {
		return &normalized
	}
	return raw
}

func derefOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}
