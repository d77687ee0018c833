package booking

import (
	"fmt"
	"time"

	"github.com/LeCasiNoze/BlackBox/internal/models"
)

// ===============================
// Day-status projection
// ===============================

// DayStatus is what the client calendar renders for one day.
type DayStatus string

const (
	DayFree DayStatus = "free" // no appointment
	DayMine DayStatus = "mine" // my upcoming appointment
	DayBusy DayStatus = "busy" // someone else's upcoming appointment
	DayDone DayStatus = "done" // done, or simply in the past
)

type MonthDay struct {
	Date   string    `json:"date"`
	Day    int       `json:"day"`
	Status DayStatus `json:"status"`
}

type MonthView struct {
	Year       int        `json:"year"`
	MonthIndex int        `json:"monthIndex"`
	Label      string     `json:"label"`
	ISO        string     `json:"iso"`
	Days       []MonthDay `json:"days"`
}

// ProjectDay derives the display status of one calendar day.
// A past day always shows as done, whatever its true status. The
// original behaves that way and the behaviour is kept on purpose.
func ProjectDay(ap *models.Appointment, viewerID uint, day, today time.Time) DayStatus {
	if ap == nil {
		return DayFree
	}

	switch {
	case Status(ap.Status) == StatusDone:
		return DayDone
	case day.Before(today):
		return DayDone
	case IsActive(Status(ap.Status)) && ap.ClientID == viewerID:
		return DayMine
	case IsActive(Status(ap.Status)):
		return DayBusy
	}

	// Cancelled future day: the slot is free again.
	return DayFree
}

// ProjectMonth walks every day of the month and projects its status.
// appointments must all fall inside the month; at most one non-cancelled
// row exists per date so a cancelled row never shadows an active one.
func ProjectMonth(
	appointments []models.Appointment,
	viewerID uint,
	year int,
	month time.Month,
	now time.Time,
) MonthView {

	loc := now.Location()

	byDate := make(map[string]*models.Appointment, len(appointments))
	for i := range appointments {
		ap := &appointments[i]
		if existing, ok := byDate[ap.Date]; ok && Status(existing.Status) != StatusCancelled {
			continue
		}
		byDate[ap.Date] = ap
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	days := make([]MonthDay, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		days = append(days, MonthDay{
			Date:   dateStr,
			Day:    d.Day(),
			Status: ProjectDay(byDate[dateStr], viewerID, d, today),
		})
	}

	return MonthView{
		Year:       year,
		MonthIndex: int(month) - 1,
		Label:      MonthLabelFR(year, month),
		ISO:        fmt.Sprintf("%04d-%02d", year, int(month)),
		Days:       days,
	}
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// MonthLabelFR renders "janvier 2025" the way the fr-FR frontend expects.
func MonthLabelFR(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", frenchMonths[int(month)-1], year)
}
