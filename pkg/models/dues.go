package models

import "time"

// DuesItem is one line of camp dues (e.g. "2026 camp dues", "power fee").
type DuesItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:128;not null" json:"name"`
	Amount      float64    `gorm:"not null" json:"amount"`
	DueDate     *time.Time `json:"dueDate"`
	Description *string    `gorm:"type:text" json:"description"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time  `json:"createdAt"`

	Payments  []DuesPayment  `json:"payments,omitempty"`
	Overrides []DuesOverride `json:"overrides,omitempty"`
}

// DuesPayment records money received against a dues item. Payments are
// recorded manually by staff (venmo, zelle, cash); there is no payment
// processor integration.
type DuesPayment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	DuesItemID uint      `gorm:"index;not null" json:"duesItemId"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Method     string    `gorm:"size:32;not null;default:'venmo'" json:"method"`
	Note       *string   `gorm:"type:text" json:"note"`
	PaidAt     time.Time `json:"paidAt"`
	RecordedBy string    `gorm:"size:128" json:"recordedBy"`
	CreatedAt  time.Time `json:"createdAt"`

	User *User `json:"user,omitempty"`
}

// DuesOverride sets a custom amount for one member on one dues item.
type DuesOverride struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_dues_override_user_item" json:"userId"`
	DuesItemID uint      `gorm:"not null;uniqueIndex:idx_dues_override_user_item" json:"duesItemId"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Reason     *string   `gorm:"size:255" json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateDuesItemRequest creates a dues item.
type CreateDuesItemRequest struct {
	Name        string     `json:"name" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// UpdateDuesItemRequest partially updates a dues item by id.
type UpdateDuesItemRequest struct {
	ID          uint       `json:"id" validate:"required"`
	Name        *string    `json:"name,omitempty"`
	Amount      *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Description *string    `json:"description,omitempty"`
	Active      *bool      `json:"active,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// RecordPaymentRequest records a manual payment.
type RecordPaymentRequest struct {
	UserID     uint       `json:"userId" validate:"required"`
	DuesItemID uint       `json:"duesItemId" validate:"required"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	Method     string     `json:"method,omitempty"`
	Note       *string    `json:"note,omitempty"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}

// OverrideRequest sets or replaces a per-member dues override.
type OverrideRequest struct {
	UserID     uint    `json:"userId" validate:"required"`
	DuesItemID uint    `json:"duesItemId" validate:"required"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Reason     *string `json:"reason,omitempty"`
}
