package booking

import (
	"time"

	"github.com/LeCasiNoze/BlackBox/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusRequested, StatusConfirmed, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the appointment still holds its day.
func IsActive(s Status) bool {
	return s == StatusRequested || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

// CanCancel: only a requested or confirmed appointment releases its day.
func CanCancel(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("cannot_cancel")
	}
	return nil
}

// CanReview: the client may rate a visit once the work is done.
func CanReview(current Status) error {
	if current != StatusDone {
		return httperr.ErrBusiness("appointment_not_done")
	}
	return nil
}

func ValidRating(rating int) error {
	if rating < 1 || rating > 5 {
		return httperr.ErrBusiness("invalid_rating")
	}
	return nil
}

func InitialStatus() Status {
	return StatusRequested
}

// ===============================
// Cancellation cutoff
// ===============================

// CancelDeadline is 24h before the appointment day's local midnight.
// The hour of the appointment is deliberately ignored.
func CancelDeadline(date string, loc *time.Location) (time.Time, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return dayStart.Add(-24 * time.Hour), nil
}

// CheckCancelCutoff fails once now has reached the deadline.
func CheckCancelCutoff(date string, now time.Time) error {
	deadline, err := CancelDeadline(date, now.Location())
	if err != nil {
		return err
	}
	if !now.Before(deadline) {
		return httperr.ErrBusiness("too_late_to_cancel")
	}
	return nil
}
