package models

import "time"

// Asset is one item of camp equipment or supply inventory.
type Asset struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ItemName         string     `gorm:"size:128;not null" json:"itemName"`
	Category         string     `gorm:"size:64;not null;default:'general'" json:"category"`
	QtyNeeded        int        `gorm:"not null;default:0" json:"qtyNeeded"`
	QtyHave          int        `gorm:"not null;default:0" json:"qtyHave"`
	Custodian        *string    `gorm:"size:128" json:"custodian"`
	Condition        *string    `gorm:"size:64" json:"condition"`
	StorageLocation  *string    `gorm:"size:128" json:"storageLocation"`
	WillBring        *string    `gorm:"size:128" json:"willBring"`
	TransportVehicle *string    `gorm:"size:128" json:"transportVehicle"`
	Notes            *string    `gorm:"type:text" json:"notes"`
	PhotoURL         *string    `gorm:"size:512" json:"photoUrl"`
	LastInventoried  *time.Time `json:"lastInventoried"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CreateAssetRequest creates an inventory item.
type CreateAssetRequest struct {
	ItemName         string  `json:"itemName" validate:"required"`
	Category         string  `json:"category,omitempty"`
	QtyNeeded        int     `json:"qtyNeeded,omitempty" validate:"omitempty,min=0"`
	QtyHave          int     `json:"qtyHave,omitempty" validate:"omitempty,min=0"`
	Custodian        *string `json:"custodian,omitempty"`
	Condition        *string `json:"condition,omitempty"`
	StorageLocation  *string `json:"storageLocation,omitempty"`
	WillBring        *string `json:"willBring,omitempty"`
	TransportVehicle *string `json:"transportVehicle,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// UpdateAssetRequest partially updates an asset by id. PhotoURL is
// deliberately absent: photos go through the upload flow, never PUT.
type UpdateAssetRequest struct {
	ID               uint       `json:"id" validate:"required"`
	ItemName         *string    `json:"itemName,omitempty"`
	Category         *string    `json:"category,omitempty"`
	QtyNeeded        *int       `json:"qtyNeeded,omitempty" validate:"omitempty,min=0"`
	QtyHave          *int       `json:"qtyHave,omitempty" validate:"omitempty,min=0"`
	Custodian        *string    `json:"custodian,omitempty"`
	Condition        *string    `json:"condition,omitempty"`
	StorageLocation  *string    `json:"storageLocation,omitempty"`
	WillBring        *string    `json:"willBring,omitempty"`
	TransportVehicle *string    `json:"transportVehicle,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	LastInventoried  *time.Time `json:"lastInventoried,omitempty"`
}
