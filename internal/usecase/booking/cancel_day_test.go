package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	"github.com/LeCasiNoze/BlackBox/internal/timezone"
)

func newCancelDayUC(repo *fakeRepo) *CancelDay {
	return NewCancelDay(repo, testMail(), testAudit(), timezone.DefaultTimezone)
}

// The use case reads the real clock, so test dates are computed
// relative to today in the business timezone.
func dateFromToday(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestCancelDay_RefundsOneCredit(t *testing.T) {
	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	date := dateFromToday(5)
	ap := repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     date,
		Status:   string(domain.StatusConfirmed),
	})

	uc := newCancelDayUC(repo)

	if err := uc.Execute(context.Background(), "bbx-001", date); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if client.FormulaRemaining != 3 {
		t.Errorf("remaining = %d, want 3", client.FormulaRemaining)
	}
	if ap.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %q", ap.Status)
	}
	if ap.CancelledAt == nil {
		t.Error("cancelledAt not set")
	}
}

func TestCancelDay_RefundClampedToTotal(t *testing.T) {
	client := testClient(1, 8, 8)
	repo := newFakeRepo(client)
	date := dateFromToday(5)
	repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     date,
		Status:   string(domain.StatusRequested),
	})

	if err := newCancelDayUC(repo).Execute(context.Background(), "bbx-001", date); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if client.FormulaRemaining != 8 {
		t.Errorf("remaining = %d, refund must clamp at the formula total", client.FormulaRemaining)
	}
}

func TestCancelDay_TooLate(t *testing.T) {
	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	date := dateFromToday(0)
	repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     date,
		Status:   string(domain.StatusConfirmed),
	})

	err := newCancelDayUC(repo).Execute(context.Background(), "bbx-001", date)
	if !httperr.IsBusiness(err, "too_late_to_cancel") {
		t.Fatalf("err = %v, want too_late_to_cancel", err)
	}
	if client.FormulaRemaining != 2 {
		t.Errorf("remaining = %d, a refused cancel must not refund", client.FormulaRemaining)
	}
}

func TestCancelDay_NotMineOrMissing(t *testing.T) {
	mine := testClient(1, 2, 8)
	other := testClient(2, 2, 8)
	other.Slug = "bbx-002"
	other.CardCode = "BBX-002"

	repo := newFakeRepo(mine, other)
	date := dateFromToday(5)
	repo.addAppointment(models.Appointment{
		ClientID: other.ID,
		Date:     date,
		Status:   string(domain.StatusConfirmed),
	})

	uc := newCancelDayUC(repo)

	if err := uc.Execute(context.Background(), "bbx-001", date); !httperr.IsBusiness(err, "appointment_not_found_or_not_cancellable") {
		t.Errorf("someone else's day: err = %v", err)
	}
	if err := uc.Execute(context.Background(), "bbx-001", dateFromToday(9)); !httperr.IsBusiness(err, "appointment_not_found_or_not_cancellable") {
		t.Errorf("free day: err = %v", err)
	}
}

func TestCancelDay_DoneIsNotCancellable(t *testing.T) {
	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	date := dateFromToday(5)
	repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     date,
		Status:   string(domain.StatusDone),
	})

	err := newCancelDayUC(repo).Execute(context.Background(), "bbx-001", date)
	if !httperr.IsBusiness(err, "appointment_not_found_or_not_cancellable") {
		t.Fatalf("err = %v", err)
	}
}

// Guards against drift between the fake and the cutoff rule: a cancel
// one minute before the deadline must pass, one minute after must not.
func TestCancelDay_CutoffBoundary(t *testing.T) {
	now := timezone.Now()
	deadlinePlus2 := now.Add(48*time.Hour + time.Minute)

	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	date := deadlinePlus2.Format("2006-01-02")
	repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     date,
		Status:   string(domain.StatusConfirmed),
	})

	if err := newCancelDayUC(repo).Execute(context.Background(), "bbx-001", date); err != nil {
		t.Fatalf("cancel 2 days ahead: %v", err)
	}
}
