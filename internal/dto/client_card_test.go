package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/LeCasiNoze/BlackBox/internal/models"
)

func TestClientCardDTO_HidesInternalFields(t *testing.T) {
	client := &models.Client{
		ID:               7,
		Slug:             "bbx-007",
		CardCode:         "BBX-007",
		FirstName:        "Jean",
		LastName:         "Dupont",
		FullName:         "Jean Dupont",
		Email:            "jean@example.com",
		Company:          "Dupont SARL",
		VehicleModel:     "Golf GTI",
		VehiclePlate:     "AB-123-CD",
		FormulaName:      "Formule Confort",
		FormulaTotal:     8,
		FormulaRemaining: 3,
		Notes:            "mauvais payeur, relancer avant toute prestation",
	}

	b, err := json.Marshal(NewClientCardDTO(client))
	if err != nil {
		t.Fatal(err)
	}
	body := string(b)

	for _, leak := range []string{"notes", "mauvais payeur", "company", "Dupont SARL", "createdAt"} {
		if strings.Contains(body, leak) {
			t.Errorf("public payload leaks %q: %s", leak, body)
		}
	}

	for _, want := range []string{
		`"cardCode":"BBX-007"`,
		`"fullName":"Jean Dupont"`,
		`"formulaRemaining":3`,
		`"vehiclePlate":"AB-123-CD"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("public payload misses %s", want)
		}
	}
}
