package booking

import (
	"context"

	"github.com/LeCasiNoze/BlackBox/internal/audit"
	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	"github.com/LeCasiNoze/BlackBox/internal/timezone"
)

type SetStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewSetStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *SetStatus {
	return &SetStatus{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// Execute is the admin status transition. Cancelling through here frees
// the day AND credits the client back, same as a client cancellation
// but without the 24h cutoff.
func (uc *SetStatus) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
	newStatus string,
) (*models.Appointment, error) {

	if !domain.IsValidStatus(newStatus) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if domain.Status(newStatus) == domain.StatusCancelled {
		if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
			return nil, err
		}

		changed, err := uc.repo.CancelAndRefund(ctx, ap.ClientID, ap.Date, timezone.NowIn(uc.tz))
		if err != nil {
			return nil, err
		}
		if changed == 0 {
			return nil, httperr.ErrBusiness("cannot_cancel")
		}
	} else {
		if err := uc.repo.UpdateStatus(ctx, ap.ID, domain.Status(newStatus)); err != nil {
			// Reactivating a cancelled row can collide with a booking
			// that took the day in the meantime.
			if httperr.IsUniqueViolation(err) {
				return nil, httperr.ErrBusiness("slot_taken")
			}
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		ClientID: &ap.ClientID,
		Action:   "appointment_status_" + newStatus,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointmentByID(ctx, ap.ID)
}
