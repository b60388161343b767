package models

import "time"

// Pipeline stages a recruit moves through. Prospect is the sole initial
// stage; declined is terminal in practice but not enforced as unwritable.
const (
	StageProspect   = "prospect"
	StageContacted  = "contacted"
	StageInterested = "interested"
	StageCommitted  = "committed"
	StageRegistered = "registered"
	StageReady      = "ready"
	StageDeclined   = "declined"
)

// Stages lists every valid pipeline stage.
var Stages = []string{
	StageProspect, StageContacted, StageInterested,
	StageCommitted, StageRegistered, StageReady, StageDeclined,
}

// ValidStage reports whether s is one of the defined pipeline stages.
func ValidStage(s string) bool {
	for _, v := range Stages {
		if v == s {
			return true
		}
	}
	return false
}

// RecruitIntake holds the raw answers from one public application.
// Rows are immutable once written; there is no edit endpoint.
type RecruitIntake struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	NamePronouns       string    `gorm:"size:255;not null" json:"namePronouns"`
	Email              *string   `gorm:"size:255" json:"email"`
	SocialHandle       *string   `gorm:"size:128" json:"socialHandle"`
	ProjectDescription *string   `gorm:"type:text" json:"projectDescription"`
	Enthusiasm         *string   `gorm:"type:text" json:"enthusiasm"`
	CampScenario       *string   `gorm:"type:text" json:"campScenario"`
	GentleReminder     *string   `gorm:"type:text" json:"gentleReminder"`
	ApproachStrangers  *string   `gorm:"size:16" json:"approachStrangers"`
	Theatrical         *string   `gorm:"size:16" json:"theatrical"`
	StraightFace       *string   `gorm:"size:16" json:"straightFace"`
	BeingApproached    *string   `gorm:"size:16" json:"beingApproached"`
	IdealBalance       *string   `gorm:"size:16" json:"idealBalance"`
	BurnExperience     *string   `gorm:"type:text" json:"burnExperience"`
	CampingSetup       *string   `gorm:"type:text" json:"campingSetup"`
	SkillsResources    *string   `gorm:"type:text" json:"skillsResources"`
	DuesQuestions      *string   `gorm:"type:text" json:"duesQuestions"`
	AnythingElse       *string   `gorm:"type:text" json:"anythingElse"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Recruit is one prospective member's pipeline record. ReferredByID
// holds a campaign case-reference string, not a database relation; older
// rows encoded the reference only inside Notes ("ref: <caseRef>").
type Recruit struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:128;not null" json:"name"`
	Email           *string    `gorm:"size:255" json:"email"`
	Phone           *string    `gorm:"size:32" json:"phone"`
	SocialHandle    *string    `gorm:"size:128" json:"socialHandle"`
	Stage           string     `gorm:"size:32;not null;default:'prospect'" json:"stage"`
	Confidence      int        `gorm:"not null;default:50" json:"confidence"`
	Notes           *string    `gorm:"type:text" json:"notes"`
	LastContactDate *time.Time `json:"lastContactDate"`
	IntakeID        *uint      `gorm:"index" json:"intakeId"`
	AssignedToID    *uint      `gorm:"index" json:"assignedToId"`
	ReferredByID    *string    `gorm:"size:64;index" json:"referredById"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Intake     *RecruitIntake `json:"intake,omitempty"`
	AssignedTo *User          `json:"assignedTo,omitempty"`
}

// ApplicationRequest is the public intake form payload. Only the
// name/pronouns field is required; everything else is stored verbatim,
// including free-text contact fields an applicant mistypes.
type ApplicationRequest struct {
	NamePronouns       string `json:"namePronouns" validate:"required"`
	Email              string `json:"email,omitempty"`
	SocialHandle       string `json:"socialHandle,omitempty"`
	ProjectDescription string `json:"projectDescription,omitempty"`
	Enthusiasm         string `json:"enthusiasm,omitempty"`
	CampScenario       string `json:"campScenario,omitempty"`
	GentleReminder     string `json:"gentleReminder,omitempty"`
	ApproachStrangers  string `json:"approachStrangers,omitempty"`
	Theatrical         string `json:"theatrical,omitempty"`
	StraightFace       string `json:"straightFace,omitempty"`
	BeingApproached    string `json:"beingApproached,omitempty"`
	IdealBalance       string `json:"idealBalance,omitempty"`
	BurnExperience     string `json:"burnExperience,omitempty"`
	CampingSetup       string `json:"campingSetup,omitempty"`
	SkillsResources    string `json:"skillsResources,omitempty"`
	DuesQuestions      string `json:"duesQuestions,omitempty"`
	AnythingElse       string `json:"anythingElse,omitempty"`
	CaseRef            string `json:"caseRef,omitempty"`
}

// CreateRecruitRequest creates a pipeline record directly (admin path).
type CreateRecruitRequest struct {
	Name            string     `json:"name" validate:"required"`
	Email           *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string    `json:"phone,omitempty"`
	SocialHandle    *string    `json:"socialHandle,omitempty"`
	Stage           string     `json:"stage,omitempty"`
	Confidence      *int       `json:"confidence,omitempty" validate:"omitempty,min=0,max=100"`
	Notes           *string    `json:"notes,omitempty"`
	LastContactDate *time.Time `json:"lastContactDate,omitempty"`
}

// UpdateRecruitRequest is the explicit update command for a recruit.
// One optional field per whitelisted attribute; anything else in the
// inbound payload is dropped by binding, never applied.
type UpdateRecruitRequest struct {
	ID              uint       `json:"id" validate:"required"`
	Name            *string    `json:"name,omitempty"`
	Email           *string    `json:"email,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	SocialHandle    *string    `json:"socialHandle,omitempty"`
	Stage           *string    `json:"stage,omitempty"`
	Confidence      *int       `json:"confidence,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	LastContactDate *time.Time `json:"lastContactDate,omitempty"`
	AssignedToID    *uint      `json:"assignedToId,omitempty"`
	ReferredByID    *string    `json:"referredById,omitempty"`
}
