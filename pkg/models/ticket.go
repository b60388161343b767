package models

import "time"

// Ticket statuses.
const (
	TicketAvailable   = "available"
	TicketRequested   = "requested"
	TicketAssigned    = "assigned"
	TicketTransferred = "transferred"
)

// Ticket is one event ticket or vehicle pass managed by the camp
// (steward sale, SAP, vehicle pass, transfer). Assignment is by member
// email rather than a hard relation so tickets can be earmarked for
// people who do not have accounts yet.
type Ticket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"size:64;not null" json:"type"`
	Status      string    `gorm:"size:32;not null;default:'available'" json:"status"`
	AssignedTo  *string   `gorm:"size:255" json:"assignedTo"`
	RequestedBy *string   `gorm:"size:255" json:"requestedBy"`
	Price       *float64  `json:"price"`
	Notes       *string   `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTicketRequest creates count tickets of a type (batch create).
type CreateTicketRequest struct {
	Type       string   `json:"type" validate:"required"`
	Status     string   `json:"status,omitempty"`
	AssignedTo *string  `json:"assignedTo,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	Count      int      `json:"count,omitempty" validate:"omitempty,min=1,max=100"`
}

// UpdateTicketRequest partially updates a ticket by id.
type UpdateTicketRequest struct {
	ID          uint     `json:"id" validate:"required"`
	Type        *string  `json:"type,omitempty"`
	Status      *string  `json:"status,omitempty"`
	AssignedTo  *string  `json:"assignedTo,omitempty"`
	RequestedBy *string  `json:"requestedBy,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// RequestTicketRequest is a member asking for an available ticket.
type RequestTicketRequest struct {
	Type  string  `json:"type" validate:"required"`
	Notes *string `json:"notes,omitempty"`
}

// TicketAvailability summarizes open inventory by type.
type TicketAvailability struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TicketCoverage is the admin roster view of who is covered.
type TicketCoverage struct {
	MemberID          uint    `json:"memberId"`
	PlayaName         string  `json:"playaName"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	HasTicket         bool    `json:"hasTicket"`
	TicketSource      *string `json:"ticketSource"`
	HasVehiclePass    bool    `json:"hasVehiclePass"`
	VehiclePassSource *string `json:"vehiclePassSource"`
}
