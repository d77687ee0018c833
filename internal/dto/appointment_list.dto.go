package dto

import "time"

// AdminAppointmentDTO is one row of the admin agenda, joined with the
// owning client.
type AdminAppointmentDTO struct {
	ID         uint      `json:"id"`
	ClientID   uint      `json:"clientId"`
	Date       string    `json:"date"`
	Time       *string   `json:"time"`
	Status     string    `json:"status"`
	Location   *string   `json:"location"`
	ClientNote *string   `json:"clientNote"`
	AdminNote  *string   `json:"adminNote"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	ClientName   string `json:"clientName"`
	VehicleModel string `json:"vehicleModel"`
	VehiclePlate string `json:"vehiclePlate"`
}

// ClientAppointmentDTO is one row of a client's own history. The shop
// keeps one vehicle per client, so vehicle info comes from the profile.
type ClientAppointmentDTO struct {
	ID         uint    `json:"id"`
	Date       string  `json:"date"`
	Time       *string `json:"time"`
	Status     string  `json:"status"`
	AdminNote  *string `json:"adminNote"`
	UserRating *int    `json:"userRating"`
	UserReview *string `json:"userReview"`

	VehicleModel string `json:"vehicleModel"`
	VehiclePlate string `json:"vehiclePlate"`
	HasPhotos    bool   `json:"hasPhotos"`
}
