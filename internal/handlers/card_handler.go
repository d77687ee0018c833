package handlers

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/dto"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	ucBooking "github.com/LeCasiNoze/BlackBox/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// CardHandler serves everything behind the NFC card URL: the calendar,
// the booking actions and the visit history. No login, the card code
// is the credential.
type CardHandler struct {
	db        *gorm.DB
	repo      domain.Repository
	monthView *ucBooking.GetMonthView
	bookDay   *ucBooking.BookDay
	cancelDay *ucBooking.CancelDay
	review    *ucBooking.SubmitReview
}

func NewCardHandler(
	db *gorm.DB,
	repo domain.Repository,
	monthView *ucBooking.GetMonthView,
	bookDay *ucBooking.BookDay,
	cancelDay *ucBooking.CancelDay,
	review *ucBooking.SubmitReview,
) *CardHandler {
	return &CardHandler{
		db:        db,
		repo:      repo,
		monthView: monthView,
		bookDay:   bookDay,
		cancelDay: cancelDay,
		review:    review,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookRequest struct {
	Date       string  `json:"date" binding:"required"`
	Time       *string `json:"time"`
	Location   *string `json:"location"`
	ClientNote *string `json:"clientNote"`
}

type CancelRequest struct {
	Date string `json:"date" binding:"required"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Review string `json:"review"`
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ======================================================
// GET /api/client/:idOrSlug?m=YYYY-MM
// ======================================================

func (h *CardHandler) GetCard(c *gin.Context) {
	client, ok := h.findClient(c)
	if !ok {
		return
	}

	month, err := h.monthView.Execute(c.Request.Context(), client, c.Query("m"))
	if err != nil {
		httperr.Internal(c, "month_failed", "Erreur lors du calcul du calendrier.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client": dto.NewClientCardDTO(client),
		"month":  month,
	})
}

// ======================================================
// GET /api/client/:idOrSlug/appointments
// ======================================================

func (h *CardHandler) ListAppointments(c *gin.Context) {
	client, ok := h.findClient(c)
	if !ok {
		return
	}

	aps, err := h.repo.ListAppointmentsForClient(c.Request.Context(), client.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erreur lors du chargement des rendez-vous.")
		return
	}

	out := make([]dto.ClientAppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.ClientAppointmentDTO{
			ID:           ap.ID,
			Date:         ap.Date,
			Time:         ap.Time,
			Status:       ap.Status,
			AdminNote:    ap.AdminNote,
			UserRating:   ap.UserRating,
			UserReview:   ap.UserReview,
			VehicleModel: client.VehicleModel,
			VehiclePlate: client.VehiclePlate,
			HasPhotos:    h.hasPhotos(ap.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"appointments": out})
}

// ======================================================
// POST /api/client/:idOrSlug/book
// ======================================================

func (h *CardHandler) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_date", "Date obligatoire.")
		return
	}

	res, err := h.bookDay.Execute(c.Request.Context(), ucBooking.BookDayInput{
		IDOrSlug:   c.Param("idOrSlug"),
		Date:       req.Date,
		Time:       req.Time,
		Location:   req.Location,
		ClientNote: req.ClientNote,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ======================================================
// POST /api/client/:idOrSlug/cancel
// ======================================================

func (h *CardHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_date", "Date obligatoire.")
		return
	}

	if err := h.cancelDay.Execute(c.Request.Context(), c.Param("idOrSlug"), req.Date); err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// ======================================================
// POST /api/client/:idOrSlug/appointments/:appointmentId/review
// ======================================================

func (h *CardHandler) SubmitReview(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("appointmentId"), 10, 64)
	if err != nil || appointmentID == 0 {
		httperr.BadRequest(c, "invalid_appointment_id", "Identifiant invalide.")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_rating", "Note invalide.")
		return
	}

	ap, err := h.review.Execute(
		c.Request.Context(),
		c.Param("idOrSlug"),
		uint(appointmentID),
		req.Rating,
		req.Review,
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": ap})
}

// ======================================================
// GET /api/days/:date
// Public report of a done day: anyone scanning the calendar can read
// what was performed, with the client's vehicle for context.
// ======================================================

func (h *CardHandler) GetDayReport(c *gin.Context) {
	date := c.Param("date")
	if !dateRe.MatchString(date) {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	ap, err := h.repo.GetAppointmentByDate(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_load_day", "Erreur lors du chargement.")
		return
	}
	if ap == nil || domain.Status(ap.Status) != domain.StatusDone {
		httperr.NotFound(c, "appointment_not_found_or_not_done", "Aucun compte-rendu pour ce jour.")
		return
	}

	client, err := h.repo.GetClientByID(c.Request.Context(), ap.ClientID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_day", "Erreur lors du chargement.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": gin.H{
			"id":           ap.ID,
			"date":         ap.Date,
			"time":         ap.Time,
			"status":       ap.Status,
			"adminNote":    ap.AdminNote,
			"userRating":   ap.UserRating,
			"userReview":   ap.UserReview,
			"vehicleModel": client.VehicleModel,
			"vehiclePlate": client.VehiclePlate,
			"clientName":   client.FullName,
			"hasPhotos":    h.hasPhotos(ap.ID),
		},
	})
}

// ======================================================
// HELPERS
// ======================================================

func (h *CardHandler) findClient(c *gin.Context) (*models.Client, bool) {
	client, err := h.repo.FindClientBySlugOrCode(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		httperr.NotFound(c, "client_not_found", "Carte inconnue.")
		return nil, false
	}
	return client, true
}

func (h *CardHandler) hasPhotos(appointmentID uint) bool {
	var count int64
	h.db.Model(&models.AppointmentPhoto{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count)
	return count > 0
}

func mapBookingError(c *gin.Context, err error) {
	var be httperr.BusinessError
	switch {
	case httperr.IsBusiness(err, "client_not_found"):
		httperr.NotFound(c, "client_not_found", "Carte inconnue.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Rendez-vous introuvable.")
	case httperr.IsBusiness(err, "appointment_not_found_or_not_cancellable"):
		httperr.NotFound(c, "appointment_not_found_or_not_cancellable", "Rendez-vous introuvable ou non annulable.")
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.Conflict(c, "slot_taken", "Ce jour est déjà réservé.")
	case httperr.AsBusiness(err, &be):
		httperr.BadRequest(c, be.Code, "Opération refusée.")
	default:
		httperr.Internal(c, "server_error", "Erreur interne.")
	}
}
