package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"

	"github.com/LeCasiNoze/BlackBox/internal/config"
	dbpkg "github.com/LeCasiNoze/BlackBox/internal/db"
	"github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	"github.com/LeCasiNoze/BlackBox/internal/timezone"
)

// Seeds a demo dataset: a handful of clients with prepaid formulas and
// a spread of appointments around today. Safe to run only on an empty
// or throwaway database.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	dbpkg.EnsureAdminUser(db, cfg)

	gofakeit.Seed(time.Now().UnixNano())

	clients, err := seedClients(db, 12)
	if err != nil {
		log.Fatalf("seed clients: %v", err)
	}
	if err := seedAppointments(db, cfg, clients); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedClients(db *gorm.DB, count int) ([]models.Client, error) {
	log.Printf("seeding %d clients", count)

	formulas := []struct {
		name  string
		total int
	}{
		{"Formule Essentielle", 4},
		{"Formule Confort", 8},
		{"Formule Prestige", 12},
	}

	lastCode := ""
	clients := make([]models.Client, 0, count)

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			code := booking.NextCardCode(lastCode)
			lastCode = code

			first := gofakeit.FirstName()
			last := gofakeit.LastName()
			formula := formulas[gofakeit.Number(0, len(formulas)-1)]
			remaining := gofakeit.Number(0, formula.total)

			client := models.Client{
				Slug:             booking.SlugForCardCode(code),
				CardCode:         code,
				FirstName:        first,
				LastName:         last,
				FullName:         strings.TrimSpace(first + " " + last),
				Email:            gofakeit.Email(),
				Phone:            gofakeit.Phone(),
				City:             gofakeit.City(),
				PostalCode:       gofakeit.Zip(),
				AddressLine1:     gofakeit.Street(),
				VehicleModel:     gofakeit.CarModel(),
				VehiclePlate:     fmt.Sprintf("%s-%03d-%s", gofakeit.LetterN(2), gofakeit.Number(1, 999), gofakeit.LetterN(2)),
				FormulaName:      formula.name,
				FormulaTotal:     formula.total,
				FormulaRemaining: remaining,
			}

			if err := tx.Create(&client).Error; err != nil {
				return err
			}
			clients = append(clients, client)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Println("clients seeded")
	return clients, nil
}

func seedAppointments(db *gorm.DB, cfg *config.Config, clients []models.Client) error {
	today := time.Now().In(timezone.Location(cfg.Timezone))

	hours := []string{"09:00", "10:30", "14:00", "16:30"}
	locations := []string{"atelier", "domicile"}

	// One appointment per day over a window around today, past days
	// marked done, future days requested or confirmed.
	count := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for offset := -10; offset <= 10; offset++ {
			if gofakeit.Number(0, 2) == 0 {
				continue // leave some days free
			}

			client := clients[gofakeit.Number(0, len(clients)-1)]
			day := today.AddDate(0, 0, offset)

			status := booking.StatusRequested
			switch {
			case offset < 0:
				status = booking.StatusDone
			case gofakeit.Bool():
				status = booking.StatusConfirmed
			}

			hour := hours[gofakeit.Number(0, len(hours)-1)]
			location := locations[gofakeit.Number(0, len(locations)-1)]

			ap := models.Appointment{
				ClientID: client.ID,
				Date:     day.Format("2006-01-02"),
				Time:     &hour,
				Status:   string(status),
				Location: &location,
			}
			if status == booking.StatusDone && gofakeit.Bool() {
				rating := gofakeit.Number(3, 5)
				review := gofakeit.Sentence(8)
				ap.UserRating = &rating
				ap.UserReview = &review
			}

			if err := tx.Create(&ap).Error; err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("appointments seeded: %d", count)
	return nil
}
