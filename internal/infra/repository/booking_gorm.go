package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/models"
)

var activeStatuses = []string{
	string(domain.StatusRequested),
	string(domain.StatusConfirmed),
}

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

func (r *BookingGormRepository) FindClientBySlugOrCode(
	ctx context.Context,
	idOrSlug string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("slug = ? OR card_code = ?", idOrSlug, idOrSlug).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *BookingGormRepository) GetClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointments (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentByDate(
	ctx context.Context,
	date string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("CASE WHEN status <> 'cancelled' THEN 0 ELSE 1 END, id DESC").
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) ListAppointmentsForMonth(
	ctx context.Context,
	from string,
	to string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC, time ASC, id ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Booking (transactional)
// --------------------------------------------------

// BookDay runs the credit debit and the insert in one transaction so a
// crash can never eat a credit without holding the day.
func (r *BookingGormRepository) BookDay(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var client models.Client
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&client, ap.ClientID).Error; err != nil {
			return err
		}

		if client.FormulaRemaining <= 0 {
			return httperr.ErrBusiness("no_credits_left")
		}

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("date = ? AND status IN ?", ap.Date, activeStatuses).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		if err := tx.Model(&models.Client{}).
			Where("id = ?", client.ID).
			Update("formula_remaining", gorm.Expr("formula_remaining - 1")).Error; err != nil {
			return err
		}

		if err := tx.Create(ap).Error; err != nil {
			// Backstop: the partial unique index catches races the
			// FOR UPDATE scan missed (e.g. another instance).
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("slot_taken")
			}
			return err
		}

		return nil
	})
}

func (r *BookingGormRepository) UpdateTimeForOwner(
	ctx context.Context,
	clientID uint,
	date string,
	hour *string,
	clientNote *string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"client_id = ? AND date = ? AND status IN ?",
			clientID, date, activeStatuses,
		).
		Updates(map[string]any{
			"time":        hour,
			"client_note": gorm.Expr("COALESCE(?, client_note)", clientNote),
		})

	return res.RowsAffected, res.Error
}

func (r *BookingGormRepository) CancelAndRefund(
	ctx context.Context,
	clientID uint,
	date string,
	now time.Time,
) (int64, error) {

	var changed int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		res := tx.Model(&models.Appointment{}).
			Where(
				"client_id = ? AND date = ? AND status IN ?",
				clientID, date, activeStatuses,
			).
			Updates(map[string]any{
				"status":       string(domain.StatusCancelled),
				"cancelled_at": now,
			})
		if res.Error != nil {
			return res.Error
		}

		changed = res.RowsAffected
		if changed == 0 {
			return nil
		}

		return tx.Model(&models.Client{}).
			Where("id = ?", clientID).
			Update(
				"formula_remaining",
				gorm.Expr("LEAST(formula_remaining + 1, formula_total)"),
			).Error
	})

	return changed, err
}

// --------------------------------------------------
// Admin (state change)
// --------------------------------------------------

func (r *BookingGormRepository) UpdateStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *BookingGormRepository) UpdateAdminNote(
	ctx context.Context,
	id uint,
	note *string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("admin_note", note).Error
}

func (r *BookingGormRepository) UpdateUserReview(
	ctx context.Context,
	id uint,
	rating int,
	review *string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"user_rating": rating,
			"user_review": review,
		}).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
