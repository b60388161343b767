package models

import "time"

// User is a camp account. Accounts are created by staff or through invite
// redemption; recruits do not get accounts until they register.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name         string     `gorm:"size:128" json:"name"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	IsAdmin      bool       `gorm:"not null;default:false" json:"isAdmin"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	LoginCount   int        `gorm:"not null;default:0" json:"loginCount"`
	CreatedAt    time.Time  `json:"createdAt"`

	Member *Member `json:"member,omitempty"`
}

// Member is the camp-facing profile attached to a user.
type Member struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"uniqueIndex;not null" json:"userId"`
	PlayaName         string    `gorm:"size:128" json:"playaName"`
	Pronouns          string    `gorm:"size:64" json:"pronouns"`
	HomeBase          string    `gorm:"size:128" json:"homeBase"`
	Phone             string    `gorm:"size:32" json:"phone"`
	EmergencyContact  string    `gorm:"size:128" json:"emergencyContact"`
	EmergencyPhone    string    `gorm:"size:32" json:"emergencyPhone"`
	Vehicle           string    `gorm:"size:128" json:"vehicle"`
	ArrivalDate       string    `gorm:"size:64" json:"arrivalDate"`
	DepartureDate     string    `gorm:"size:64" json:"departureDate"`
	CampingSetup      string    `gorm:"type:text" json:"campingSetup"`
	CampRole          string    `gorm:"size:128" json:"campRole"`
	DietaryNotes      string    `gorm:"type:text" json:"dietaryNotes"`
	HasTicket         bool      `gorm:"not null;default:false" json:"hasTicket"`
	TicketSource      *string   `gorm:"size:64" json:"ticketSource"`
	HasVehiclePass    bool      `gorm:"not null;default:false" json:"hasVehiclePass"`
	VehiclePassSource *string   `gorm:"size:64" json:"vehiclePassSource"`
	Status            string    `gorm:"size:32;not null;default:'active'" json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty"`
}

// UpdateProfileRequest carries the member-editable profile fields.
// Everything is optional; absent fields are left untouched.
type UpdateProfileRequest struct {
	PlayaName         *string `json:"playaName,omitempty"`
	Pronouns          *string `json:"pronouns,omitempty"`
	HomeBase          *string `json:"homeBase,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	EmergencyContact  *string `json:"emergencyContact,omitempty"`
	EmergencyPhone    *string `json:"emergencyPhone,omitempty"`
	Vehicle           *string `json:"vehicle,omitempty"`
	ArrivalDate       *string `json:"arrivalDate,omitempty"`
	DepartureDate     *string `json:"departureDate,omitempty"`
	CampingSetup      *string `json:"campingSetup,omitempty"`
	CampRole          *string `json:"campRole,omitempty"`
	DietaryNotes      *string `json:"dietaryNotes,omitempty"`
	HasTicket         *bool   `json:"hasTicket,omitempty"`
	TicketSource      *string `json:"ticketSource,omitempty"`
	HasVehiclePass    *bool   `json:"hasVehiclePass,omitempty"`
	VehiclePassSource *string `json:"vehiclePassSource,omitempty"`
}

// SetAdminRequest toggles a user's admin flag.
type SetAdminRequest struct {
	ID      uint  `json:"id" validate:"required"`
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

// UserSummary is the roster view of a user.
type UserSummary struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsAdmin   bool   `json:"isAdmin"`
	PlayaName string `json:"playaName,omitempty"`
}

// RegisterRequest creates an account from a valid invite code.
type RegisterRequest struct {
	InviteCode string `json:"inviteCode" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required"`
}

// LoginRequest is the credential payload for session login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}
