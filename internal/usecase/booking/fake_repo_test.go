package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/LeCasiNoze/BlackBox/internal/audit"
	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/mail"
	"github.com/LeCasiNoze/BlackBox/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory Repository mirroring the SQL semantics of
// the gorm implementation: one active appointment per date, credit
// debit on insert, clamped refund on cancel.
type fakeRepo struct {
	clients      map[uint]*models.Client
	appointments []*models.Appointment
	nextID       uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo(clients ...*models.Client) *fakeRepo {
	r := &fakeRepo{
		clients: make(map[uint]*models.Client),
		nextID:  1,
	}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	ap.ID = r.nextID
	r.nextID++
	cp := ap
	r.appointments = append(r.appointments, &cp)
	return &cp
}

func (r *fakeRepo) FindClientBySlugOrCode(_ context.Context, idOrSlug string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.Slug == idOrSlug || c.CardCode == idOrSlug {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetClientByID(_ context.Context, id uint) (*models.Client, error) {
	if c, ok := r.clients[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetAppointmentByDate(_ context.Context, date string) (*models.Appointment, error) {
	var latest *models.Appointment
	for _, ap := range r.appointments {
		if ap.Date != date {
			continue
		}
		if domain.Status(ap.Status) != domain.StatusCancelled {
			return ap, nil
		}
		latest = ap
	}
	return latest, nil
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) ListAppointmentsForMonth(_ context.Context, from, to string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Date >= from && ap.Date < to {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForClient(_ context.Context, clientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientID == clientID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) BookDay(_ context.Context, ap *models.Appointment) error {
	client, ok := r.clients[ap.ClientID]
	if !ok {
		return errNotFound
	}
	if client.FormulaRemaining <= 0 {
		return httperr.ErrBusiness("no_credits_left")
	}
	// Same rule as the partial unique index: any non-cancelled row
	// holds the day, done included.
	for _, other := range r.appointments {
		if other.Date == ap.Date && domain.Status(other.Status) != domain.StatusCancelled {
			return httperr.ErrBusiness("slot_taken")
		}
	}

	client.FormulaRemaining--
	stored := r.addAppointment(*ap)
	ap.ID = stored.ID
	return nil
}

func (r *fakeRepo) UpdateTimeForOwner(_ context.Context, clientID uint, date string, hour *string, clientNote *string) (int64, error) {
	for _, ap := range r.appointments {
		if ap.ClientID == clientID && ap.Date == date && domain.IsActive(domain.Status(ap.Status)) {
			ap.Time = hour
			if clientNote != nil {
				ap.ClientNote = clientNote
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeRepo) CancelAndRefund(_ context.Context, clientID uint, date string, now time.Time) (int64, error) {
	for _, ap := range r.appointments {
		if ap.ClientID == clientID && ap.Date == date && domain.IsActive(domain.Status(ap.Status)) {
			ap.Status = string(domain.StatusCancelled)
			t := now
			ap.CancelledAt = &t

			if client, ok := r.clients[clientID]; ok {
				client.FormulaRemaining++
				if client.FormulaRemaining > client.FormulaTotal {
					client.FormulaRemaining = client.FormulaTotal
				}
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uint, status domain.Status) error {
	ap, err := r.GetAppointmentByID(context.Background(), id)
	if err != nil {
		return err
	}

	// The partial unique index refuses a second non-cancelled row on
	// one date, e.g. when reactivating a cancelled appointment.
	if status != domain.StatusCancelled {
		for _, other := range r.appointments {
			if other.ID != id && other.Date == ap.Date && domain.Status(other.Status) != domain.StatusCancelled {
				return &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_active_date"}
			}
		}
	}

	ap.Status = string(status)
	return nil
}

func (r *fakeRepo) UpdateAdminNote(_ context.Context, id uint, note *string) error {
	ap, err := r.GetAppointmentByID(context.Background(), id)
	if err != nil {
		return err
	}
	ap.AdminNote = note
	return nil
}

func (r *fakeRepo) UpdateUserReview(_ context.Context, id uint, rating int, review *string) error {
	ap, err := r.GetAppointmentByID(context.Background(), id)
	if err != nil {
		return err
	}
	ap.UserRating = &rating
	ap.UserReview = review
	return nil
}

// ======================================================
// SHARED TEST PLUMBING
// ======================================================

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, mail.Event) error { return nil }

func testMail() *mail.Dispatcher {
	return mail.NewDispatcher(nopNotifier{})
}

func testAudit() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}

func strPtr(s string) *string { return &s }
