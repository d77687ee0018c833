package models

import "time"

// Client is identified either by its slug or by the NFC card code
// printed on the physical card. There is no client login.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Slug     string `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	CardCode string `gorm:"size:50;uniqueIndex;not null" json:"cardCode"`

	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	FullName  string `gorm:"size:200" json:"fullName"`

	Email   string `gorm:"size:100" json:"email"`
	Phone   string `gorm:"size:30" json:"phone"`
	Company string `gorm:"size:100" json:"company"`

	AddressLine1 string `gorm:"size:255" json:"addressLine1"`
	AddressLine2 string `gorm:"size:255" json:"addressLine2"`
	PostalCode   string `gorm:"size:20" json:"postalCode"`
	City         string `gorm:"size:100" json:"city"`

	VehicleModel string `gorm:"size:100" json:"vehicleModel"`
	VehiclePlate string `gorm:"size:20" json:"vehiclePlate"`

	// Forfait prépayé: FormulaRemaining is debited on booking and
	// credited back on cancellation, always within [0, FormulaTotal].
	FormulaName      string `gorm:"size:100" json:"formulaName"`
	FormulaTotal     int    `gorm:"not null;default:0" json:"formulaTotal"`
	FormulaRemaining int    `gorm:"not null;default:0" json:"formulaRemaining"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
