package models

import "time"

type AppointmentPhoto struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"not null;index" json:"appointmentId"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	URL     string `gorm:"size:500;not null" json:"url"`
	IsCover bool   `gorm:"not null;default:false" json:"isCover"`
	Caption string `gorm:"size:255" json:"caption"`

	CreatedAt time.Time `json:"createdAt"`
}
