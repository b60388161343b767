package models

import "time"

// Announcement is a short, time-limited message shown to members.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"size:140;not null" json:"message"`
	Emoji     *string   `gorm:"size:16" json:"emoji"`
	Color     string    `gorm:"size:32;not null;default:'indigo'" json:"color"`
	AuthorID  uint      `gorm:"index;not null" json:"authorId"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`

	Author *User `json:"author,omitempty"`
}

// CreateAnnouncementRequest creates an announcement. Expiry is clamped
// to 1-30 days, defaulting to 7.
type CreateAnnouncementRequest struct {
	Message       string  `json:"message" validate:"required,max=140"`
	Emoji         *string `json:"emoji,omitempty"`
	Color         string  `json:"color,omitempty"`
	ExpiresInDays int     `json:"expiresInDays,omitempty"`
}

// InviteCode is a single-use themed code admins hand out to let new
// members create accounts.
type InviteCode struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"size:32;uniqueIndex;not null" json:"code"`
	UsedByID  *uint      `json:"usedById"`
	UsedAt    *time.Time `json:"usedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Meal is one planned camp meal offered by a member.
type Meal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"index;not null" json:"memberId"`
	MealName    string    `gorm:"size:128;not null" json:"mealName"`
	Portions    int       `gorm:"not null;default:1" json:"portions"`
	DietaryTags *string   `gorm:"size:255" json:"dietaryTags"`
	CreatedAt   time.Time `json:"createdAt"`

	Member *Member `json:"member,omitempty"`
}

// CreateMealRequest adds a meal to the plan.
type CreateMealRequest struct {
	MealName    string  `json:"mealName" validate:"required"`
	Portions    int     `json:"portions,omitempty" validate:"omitempty,min=1"`
	DietaryTags *string `json:"dietaryTags,omitempty"`
}

// ActivityLog records one member action for engagement analytics.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Action    string    `gorm:"size:64;not null" json:"action"`
	Detail    *string   `gorm:"size:255" json:"detail"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	User *User `json:"user,omitempty"`
}

// LogActivityRequest records a client-side action.
type LogActivityRequest struct {
	Action string  `json:"action" validate:"required"`
	Detail *string `json:"detail,omitempty"`
}
