package booking

import (
	"context"
	"time"

	"github.com/LeCasiNoze/BlackBox/internal/models"
)

type Repository interface {
	// -------- Clients --------
	FindClientBySlugOrCode(
		ctx context.Context,
		idOrSlug string,
	) (*models.Client, error)

	GetClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// -------- Appointments (read) --------

	// GetAppointmentByDate returns (nil, nil) when the day is free.
	GetAppointmentByDate(
		ctx context.Context,
		date string,
	) (*models.Appointment, error)

	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointmentsForMonth(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Appointment, error)

	ListAppointmentsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)

	// -------- Booking (transactional) --------

	// BookDay debits one credit and inserts the requested appointment
	// in a single transaction. Fails with no_credits_left or slot_taken.
	BookDay(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateTimeForOwner reschedules the hour of an active appointment
	// owned by clientID on date. Returns the number of rows changed.
	UpdateTimeForOwner(
		ctx context.Context,
		clientID uint,
		date string,
		hour *string,
		clientNote *string,
	) (int64, error)

	// CancelAndRefund marks the active appointment owned by clientID on
	// date as cancelled and credits one cleaning back, clamped to the
	// formula total, in a single transaction. Returns rows changed.
	CancelAndRefund(
		ctx context.Context,
		clientID uint,
		date string,
		now time.Time,
	) (int64, error)

	// -------- Admin (state change) --------

	UpdateStatus(
		ctx context.Context,
		id uint,
		status Status,
	) error

	UpdateAdminNote(
		ctx context.Context,
		id uint,
		note *string,
	) error

	UpdateUserReview(
		ctx context.Context,
		id uint,
		rating int,
		review *string,
	) error
}
