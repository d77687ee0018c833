package booking

import (
	"testing"
	"time"

	"github.com/LeCasiNoze/BlackBox/internal/models"
)

func mustParis(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestProjectDay(t *testing.T) {
	loc := mustParis(t)
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, loc)
	future := today.AddDate(0, 0, 3)
	past := today.AddDate(0, 0, -3)

	ap := func(clientID uint, status Status) *models.Appointment {
		return &models.Appointment{ClientID: clientID, Status: string(status)}
	}

	tests := []struct {
		name string
		ap   *models.Appointment
		day  time.Time
		want DayStatus
	}{
		{"no appointment", nil, future, DayFree},
		{"mine upcoming", ap(7, StatusRequested), future, DayMine},
		{"mine confirmed", ap(7, StatusConfirmed), future, DayMine},
		{"someone else upcoming", ap(9, StatusConfirmed), future, DayBusy},
		{"done shows done", ap(9, StatusDone), future, DayDone},
		{"past day always done", ap(7, StatusConfirmed), past, DayDone},
		{"cancelled future is free", ap(7, StatusCancelled), future, DayFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectDay(tt.ap, 7, tt.day, today)
			if got != tt.want {
				t.Errorf("ProjectDay() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProjectMonth(t *testing.T) {
	loc := mustParis(t)
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, loc)

	appointments := []models.Appointment{
		{ClientID: 7, Date: "2025-06-12", Status: string(StatusConfirmed)},
		{ClientID: 9, Date: "2025-06-15", Status: string(StatusRequested)},
		{ClientID: 9, Date: "2025-06-20", Status: string(StatusCancelled)},
		// The done row must win over the older cancelled one on the same day.
		{ClientID: 9, Date: "2025-06-05", Status: string(StatusCancelled)},
		{ClientID: 9, Date: "2025-06-05", Status: string(StatusDone)},
	}

	view := ProjectMonth(appointments, 7, 2025, time.June, now)

	if view.Label != "juin 2025" {
		t.Errorf("Label = %q", view.Label)
	}
	if view.ISO != "2025-06" {
		t.Errorf("ISO = %q", view.ISO)
	}
	if view.MonthIndex != 5 {
		t.Errorf("MonthIndex = %d", view.MonthIndex)
	}
	if len(view.Days) != 30 {
		t.Fatalf("len(Days) = %d, want 30", len(view.Days))
	}

	byDate := make(map[string]DayStatus, len(view.Days))
	for _, d := range view.Days {
		byDate[d.Date] = d.Status
	}

	want := map[string]DayStatus{
		"2025-06-05": DayDone, // done, happens to be in the past too
		"2025-06-09": DayFree, // past but never booked
		"2025-06-12": DayMine,
		"2025-06-15": DayBusy,
		"2025-06-20": DayFree, // cancelled releases the day
		"2025-06-25": DayFree,
	}
	for date, status := range want {
		if byDate[date] != status {
			t.Errorf("%s = %s, want %s", date, byDate[date], status)
		}
	}
}

func TestMonthLabelFR(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "janvier 2025"},
		{time.August, "août 2025"},
		{time.December, "décembre 2025"},
	}
	for _, tt := range tests {
		if got := MonthLabelFR(2025, tt.month); got != tt.want {
			t.Errorf("MonthLabelFR(2025, %v) = %q, want %q", tt.month, got, tt.want)
		}
	}
}
