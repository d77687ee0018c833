package models

import "time"

// Appointment holds one calendar day system-wide. The unique-day rule
// only applies to non-cancelled rows: a partial unique index on (date)
// WHERE status <> 'cancelled' is created in internal/db.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"clientId"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Local calendar date, YYYY-MM-DD.
	Date string `gorm:"size:10;not null;index" json:"date"`

	// Optional HH:MM, the client may book a day without an hour.
	Time *string `gorm:"size:5" json:"time"`

	Status string `gorm:"size:20;not null;default:'requested'" json:"status"`

	// atelier or domicile.
	Location *string `gorm:"size:20" json:"location"`

	ClientNote *string `gorm:"type:text" json:"clientNote"`
	AdminNote  *string `gorm:"type:text" json:"adminNote"`

	UserRating *int    `json:"userRating"`
	UserReview *string `gorm:"type:text" json:"userReview"`

	CancelledAt *time.Time `json:"cancelledAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
