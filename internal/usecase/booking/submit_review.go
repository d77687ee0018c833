package booking

import (
	"context"
	"strings"

	"github.com/LeCasiNoze/BlackBox/internal/audit"
	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/models"
)

type SubmitReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitReview {
	return &SubmitReview{
		repo:  repo,
		audit: audit,
	}
}

// Execute stores the client's rating and optional comment on one of
// their own done appointments.
func (uc *SubmitReview) Execute(
	ctx context.Context,
	idOrSlug string,
	appointmentID uint,
	rating int,
	review string,
) (*models.Appointment, error) {

	client, err := uc.repo.FindClientBySlugOrCode(ctx, idOrSlug)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	if err := domain.ValidRating(rating); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil || ap.ClientID != client.ID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReview(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	var reviewPtr *string
	if trimmed := strings.TrimSpace(review); trimmed != "" {
		reviewPtr = &trimmed
	}

	if err := uc.repo.UpdateUserReview(ctx, ap.ID, rating, reviewPtr); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClientID: &client.ID,
		Action:   "review_submitted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointmentByID(ctx, ap.ID)
}
