package booking

import (
	"context"
	"testing"

	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	"github.com/LeCasiNoze/BlackBox/internal/timezone"
)

const testAdminID uint = 42

func newSetStatusUC(repo *fakeRepo) *SetStatus {
	return NewSetStatus(repo, testAudit(), timezone.DefaultTimezone)
}

func TestSetStatus_Confirm(t *testing.T) {
	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	ap := repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     "2030-06-15",
		Status:   string(domain.StatusRequested),
	})

	got, err := newSetStatusUC(repo).Execute(context.Background(), testAdminID, ap.ID, "confirmed")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %q", got.Status)
	}
	if client.FormulaRemaining != 2 {
		t.Errorf("remaining = %d, a confirm must not touch credits", client.FormulaRemaining)
	}
}

func TestSetStatus_CancelRefundsWithoutCutoff(t *testing.T) {
	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	// Past date: a client could no longer cancel this, the admin can.
	ap := repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     "2020-01-10",
		Status:   string(domain.StatusConfirmed),
	})

	got, err := newSetStatusUC(repo).Execute(context.Background(), testAdminID, ap.ID, "cancelled")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %q", got.Status)
	}
	if client.FormulaRemaining != 3 {
		t.Errorf("remaining = %d, admin cancel must credit back", client.FormulaRemaining)
	}
}

func TestSetStatus_CancelDoneRefused(t *testing.T) {
	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	ap := repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     "2030-06-15",
		Status:   string(domain.StatusDone),
	})

	_, err := newSetStatusUC(repo).Execute(context.Background(), testAdminID, ap.ID, "cancelled")
	if !httperr.IsBusiness(err, "cannot_cancel") {
		t.Fatalf("err = %v, want cannot_cancel", err)
	}
	if client.FormulaRemaining != 2 {
		t.Errorf("remaining = %d, refused cancel must not refund", client.FormulaRemaining)
	}
}

func TestSetStatus_ReactivateIntoTakenDay(t *testing.T) {
	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	cancelled := repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     "2030-06-15",
		Status:   string(domain.StatusCancelled),
	})
	// Someone else booked the freed day in the meantime.
	repo.addAppointment(models.Appointment{
		ClientID: 9,
		Date:     "2030-06-15",
		Status:   string(domain.StatusConfirmed),
	})

	_, err := newSetStatusUC(repo).Execute(context.Background(), testAdminID, cancelled.ID, "confirmed")
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("err = %v, want slot_taken", err)
	}
	if cancelled.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %q, reactivation must not have landed", cancelled.Status)
	}
}

func TestSetStatus_BadInputs(t *testing.T) {
	repo := newFakeRepo(testClient(1, 2, 8))
	uc := newSetStatusUC(repo)

	if _, err := uc.Execute(context.Background(), testAdminID, 1, "archived"); !httperr.IsBusiness(err, "invalid_status") {
		t.Errorf("unknown status: err = %v", err)
	}
	if _, err := uc.Execute(context.Background(), testAdminID, 999, "confirmed"); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("missing appointment: err = %v", err)
	}
}
