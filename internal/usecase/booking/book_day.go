package booking

import (
	"context"
	"errors"
	"time"

	"github.com/LeCasiNoze/BlackBox/internal/audit"
	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/mail"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	"github.com/LeCasiNoze/BlackBox/internal/redislock"
)

// ======================================================
// INPUT
// ======================================================

type BookDayInput struct {
	IDOrSlug string

	Date       string // YYYY-MM-DD
	Time       *string
	Location   *string
	ClientNote *string
}

type BookDayResult struct {
	Created bool `json:"created,omitempty"`
	Updated bool `json:"updated,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

// BookDay books a free day for the card holder, or reschedules the hour
// when the client already holds that day. A new booking debits one
// cleaning credit; a reschedule never touches credits.
type BookDay struct {
	repo   domain.Repository
	locker redislock.Locker
	mail   *mail.Dispatcher
	audit  *audit.Dispatcher
}

func NewBookDay(
	repo domain.Repository,
	locker redislock.Locker,
	mailer *mail.Dispatcher,
	audit *audit.Dispatcher,
) *BookDay {
	return &BookDay{
		repo:   repo,
		locker: locker,
		mail:   mailer,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookDay) Execute(
	ctx context.Context,
	in BookDayInput,
) (*BookDayResult, error) {

	client, err := uc.repo.FindClientBySlugOrCode(ctx, in.IDOrSlug)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	hour := normalizeHour(in.Time)
	location := normalizeLocation(in.Location)

	existing, err := uc.repo.GetAppointmentByDate(ctx, in.Date)
	if err != nil {
		return nil, err
	}

	// Rebooking my own active day only moves the hour.
	if existing != nil &&
		existing.ClientID == client.ID &&
		domain.IsActive(domain.Status(existing.Status)) {

		newHour := hour
		if newHour == nil {
			newHour = existing.Time
		}

		changed, err := uc.repo.UpdateTimeForOwner(ctx, client.ID, in.Date, newHour, in.ClientNote)
		if err != nil {
			return nil, err
		}
		if changed == 0 {
			return nil, httperr.ErrBusiness("cannot_update_appointment")
		}

		uc.mail.Dispatch(mail.Event{
			Type:   mail.EventUpdate,
			Client: client,
			Date:   in.Date,
			Time:   newHour,
		})

		uc.audit.Dispatch(audit.Event{
			ClientID: &client.ID,
			Action:   "appointment_rescheduled",
			Entity:   "appointment",
			EntityID: &existing.ID,
		})

		return &BookDayResult{Updated: true}, nil
	}

	// Fresh booking: the cheap pre-check keeps the common error out of
	// the lock, the transaction re-checks under FOR UPDATE anyway.
	if client.FormulaRemaining <= 0 {
		return nil, httperr.ErrBusiness("no_credits_left")
	}

	ap := &models.Appointment{
		ClientID:   client.ID,
		Date:       in.Date,
		Time:       hour,
		Status:     string(domain.InitialStatus()),
		Location:   location,
		ClientNote: in.ClientNote,
	}

	err = uc.locker.WithDayLock(ctx, in.Date, func(ctx context.Context) error {
		return uc.repo.BookDay(ctx, ap)
	})
	if err != nil {
		if errors.Is(err, redislock.ErrLockNotAcquired) {
			return nil, httperr.ErrBusiness("slot_taken")
		}
		return nil, err
	}

	uc.mail.Dispatch(mail.Event{
		Type:   mail.EventBook,
		Client: client,
		Date:   in.Date,
		Time:   hour,
	})

	uc.audit.Dispatch(audit.Event{
		ClientID: &client.ID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &BookDayResult{Created: true}, nil
}

// ======================================================
// HELPERS
// ======================================================

func normalizeHour(hour *string) *string {
	if hour == nil || *hour == "" {
		return nil
	}
	if _, err := time.Parse("15:04", *hour); err != nil {
		return nil
	}
	return hour
}

func normalizeLocation(location *string) *string {
	if location == nil {
		return nil
	}
	switch *location {
	case "atelier", "domicile":
		return location
	}
	return nil
}
