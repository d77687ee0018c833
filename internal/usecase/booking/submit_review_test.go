package booking

import (
	"context"
	"testing"

	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/models"
)

func newSubmitReviewUC(repo *fakeRepo) *SubmitReview {
	return NewSubmitReview(repo, testAudit())
}

func TestSubmitReview_OnDoneAppointment(t *testing.T) {
	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	ap := repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     "2025-01-10",
		Status:   string(domain.StatusDone),
	})

	got, err := newSubmitReviewUC(repo).Execute(context.Background(), "bbx-001", ap.ID, 5, "  Impeccable, merci !  ")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.UserRating == nil || *got.UserRating != 5 {
		t.Errorf("rating = %v", got.UserRating)
	}
	if got.UserReview == nil || *got.UserReview != "Impeccable, merci !" {
		t.Errorf("review = %v, want trimmed text", got.UserReview)
	}
}

func TestSubmitReview_EmptyCommentStoredAsNull(t *testing.T) {
	client := testClient(1, 2, 8)
	repo := newFakeRepo(client)
	ap := repo.addAppointment(models.Appointment{
		ClientID: client.ID,
		Date:     "2025-01-10",
		Status:   string(domain.StatusDone),
	})

	got, err := newSubmitReviewUC(repo).Execute(context.Background(), "bbx-001", ap.ID, 4, "   ")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.UserReview != nil {
		t.Errorf("review = %v, want nil", got.UserReview)
	}
}

func TestSubmitReview_Refusals(t *testing.T) {
	mine := testClient(1, 2, 8)
	other := testClient(2, 2, 8)
	other.Slug = "bbx-002"
	other.CardCode = "BBX-002"

	repo := newFakeRepo(mine, other)
	done := repo.addAppointment(models.Appointment{
		ClientID: other.ID,
		Date:     "2025-01-10",
		Status:   string(domain.StatusDone),
	})
	upcoming := repo.addAppointment(models.Appointment{
		ClientID: mine.ID,
		Date:     "2030-06-15",
		Status:   string(domain.StatusConfirmed),
	})

	uc := newSubmitReviewUC(repo)

	if _, err := uc.Execute(context.Background(), "nobody", done.ID, 5, ""); !httperr.IsBusiness(err, "client_not_found") {
		t.Errorf("unknown client: err = %v", err)
	}
	if _, err := uc.Execute(context.Background(), "bbx-001", done.ID, 5, ""); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("someone else's appointment: err = %v", err)
	}
	if _, err := uc.Execute(context.Background(), "bbx-001", upcoming.ID, 5, ""); !httperr.IsBusiness(err, "appointment_not_done") {
		t.Errorf("not done yet: err = %v", err)
	}
	if _, err := uc.Execute(context.Background(), "bbx-001", upcoming.ID, 0, ""); !httperr.IsBusiness(err, "invalid_rating") {
		t.Errorf("bad rating: err = %v", err)
	}
}
