package models

import "time"

// Campaign channels we track attribution for.
const (
	ChannelFacebook  = "facebook"
	ChannelInstagram = "instagram"
	ChannelReddit    = "reddit"
	ChannelFriend    = "friend"
	ChannelTwitter   = "twitter"
	ChannelEmail     = "email"
	ChannelFlyer     = "flyer"
	ChannelOther     = "other"
)

// Campaign is a recruitment channel identified publicly by its case
// reference. The case reference is embedded in shared links and carried
// to the application form via cookie; it is immutable once clicks or
// recruits reference it.
type Campaign struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:128;not null" json:"name"`
	CaseRef    string     `gorm:"size:64;uniqueIndex;not null" json:"caseRef"`
	Channel    string     `gorm:"size:32;not null" json:"channel"`
	Notes      *string    `gorm:"type:text" json:"notes"`
	Active     bool       `gorm:"not null;default:true" json:"active"`
	LaunchedAt *time.Time `json:"launchedAt"`
	CreatedAt  time.Time  `json:"createdAt"`

	Clicks []CampaignClick `json:"-"`
}

// CampaignClick is one anonymous click on a tracked link. No personal
// data is stored; rows are aggregated, never reviewed individually.
type CampaignClick struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CampaignID uint      `gorm:"index;not null" json:"campaignId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateCampaignRequest creates a campaign. The case reference must be
// globally unique.
type CreateCampaignRequest struct {
	Name     string  `json:"name" validate:"required"`
	CaseRef  string  `json:"caseRef" validate:"required"`
	Channel  string  `json:"channel" validate:"required,oneof=facebook instagram reddit friend twitter email flyer other"`
	Notes    *string `json:"notes,omitempty"`
	Launched bool    `json:"launched,omitempty"`
}

// UpdateCampaignRequest partially updates a campaign by id. The case
// reference is deliberately not updatable.
type UpdateCampaignRequest struct {
	ID       uint    `json:"id" validate:"required"`
	Name     *string `json:"name,omitempty"`
	Channel  *string `json:"channel,omitempty" validate:"omitempty,oneof=facebook instagram reddit friend twitter email flyer other"`
	Notes    *string `json:"notes,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Launched *bool   `json:"launched,omitempty"`
}

// TrackClickRequest is the public click-tracking payload.
type TrackClickRequest struct {
	Ref string `json:"ref"`
}

// FunnelStats groups a campaign's matched recruits by pipeline stage.
// Declined recruits are included in both ByStage and Total; callers
// interpret and often deduct them.
type FunnelStats struct {
	Total   int            `json:"total"`
	ByStage map[string]int `json:"byStage"`
}

// CampaignFunnel is a campaign with its computed conversion metrics.
type CampaignFunnel struct {
	Campaign
	ClickCount int         `json:"clicks"`
	Funnel     FunnelStats `json:"funnel"`
}
