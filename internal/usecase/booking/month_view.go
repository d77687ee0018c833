package booking

import (
	"context"
	"fmt"
	"time"

	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	"github.com/LeCasiNoze/BlackBox/internal/timezone"
)

type GetMonthView struct {
	repo domain.Repository
	tz   string
}

func NewGetMonthView(repo domain.Repository, tz string) *GetMonthView {
	return &GetMonthView{repo: repo, tz: tz}
}

// Execute projects the calendar the card page renders. monthISO is an
// optional "YYYY-MM"; anything else falls back to the current month.
func (uc *GetMonthView) Execute(
	ctx context.Context,
	client *models.Client,
	monthISO string,
) (*domain.MonthView, error) {

	now := timezone.NowIn(uc.tz)

	year, month := now.Year(), now.Month()
	if monthISO != "" {
		var y, m int
		if _, err := fmt.Sscanf(monthISO, "%4d-%2d", &y, &m); err == nil && m >= 1 && m <= 12 {
			year, month = y, time.Month(m)
		}
	}

	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForMonth(
		ctx,
		first.Format("2006-01-02"),
		next.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}

	view := domain.ProjectMonth(appointments, client.ID, year, month, now)
	return &view, nil
}
