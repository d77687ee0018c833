package booking

import (
	"context"

	"github.com/LeCasiNoze/BlackBox/internal/audit"
	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/mail"
	"github.com/LeCasiNoze/BlackBox/internal/timezone"
)

type CancelDay struct {
	repo  domain.Repository
	mail  *mail.Dispatcher
	audit *audit.Dispatcher
	tz    string
}

func NewCancelDay(
	repo domain.Repository,
	mailer *mail.Dispatcher,
	audit *audit.Dispatcher,
	tz string,
) *CancelDay {
	return &CancelDay{
		repo:  repo,
		mail:  mailer,
		audit: audit,
		tz:    tz,
	}
}

// Execute cancels the caller's active appointment on date and credits
// one cleaning back, unless the 24h cutoff has passed.
func (uc *CancelDay) Execute(
	ctx context.Context,
	idOrSlug string,
	date string,
) error {

	client, err := uc.repo.FindClientBySlugOrCode(ctx, idOrSlug)
	if err != nil {
		return httperr.ErrBusiness("client_not_found")
	}

	ap, err := uc.repo.GetAppointmentByDate(ctx, date)
	if err != nil {
		return err
	}

	if ap == nil ||
		ap.ClientID != client.ID ||
		!domain.IsActive(domain.Status(ap.Status)) {
		return httperr.ErrBusiness("appointment_not_found_or_not_cancellable")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.CheckCancelCutoff(date, now); err != nil {
		return err
	}

	changed, err := uc.repo.CancelAndRefund(ctx, client.ID, date, now)
	if err != nil {
		return err
	}
	if changed == 0 {
		return httperr.ErrBusiness("appointment_not_found_or_not_cancellable")
	}

	uc.mail.Dispatch(mail.Event{
		Type:   mail.EventCancel,
		Client: client,
		Date:   date,
		Time:   ap.Time,
	})

	uc.audit.Dispatch(audit.Event{
		ClientID: &client.ID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
