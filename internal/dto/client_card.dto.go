package dto

import "github.com/LeCasiNoze/BlackBox/internal/models"

// ClientCardDTO is the public face of a client on the card page.
// Internal admin remarks (notes, company) and bookkeeping timestamps
// never leave through this path.
type ClientCardDTO struct {
	ID       uint   `json:"id"`
	Slug     string `json:"slug"`
	CardCode string `json:"cardCode"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`

	Email string `json:"email"`
	Phone string `json:"phone"`

	VehicleModel string `json:"vehicleModel"`
	VehiclePlate string `json:"vehiclePlate"`

	FormulaName      string `json:"formulaName"`
	FormulaTotal     int    `json:"formulaTotal"`
	FormulaRemaining int    `json:"formulaRemaining"`
}

func NewClientCardDTO(client *models.Client) ClientCardDTO {
	return ClientCardDTO{
		ID:               client.ID,
		Slug:             client.Slug,
		CardCode:         client.CardCode,
		FirstName:        client.FirstName,
		LastName:         client.LastName,
		FullName:         client.FullName,
		Email:            client.Email,
		Phone:            client.Phone,
		VehicleModel:     client.VehicleModel,
		VehiclePlate:     client.VehiclePlate,
		FormulaName:      client.FormulaName,
		FormulaTotal:     client.FormulaTotal,
		FormulaRemaining: client.FormulaRemaining,
	}
}
