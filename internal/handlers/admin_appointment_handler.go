package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LeCasiNoze/BlackBox/internal/audit"
	"github.com/LeCasiNoze/BlackBox/internal/dto"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/middleware"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	ucBooking "github.com/LeCasiNoze/BlackBox/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AdminAppointmentHandler struct {
	db        *gorm.DB
	setStatus *ucBooking.SetStatus
	audit     *audit.Dispatcher
}

func NewAdminAppointmentHandler(
	db *gorm.DB,
	setStatus *ucBooking.SetStatus,
	audit *audit.Dispatcher,
) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{
		db:        db,
		setStatus: setStatus,
		audit:     audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AdminNoteRequest struct {
	AdminNote *string `json:"adminNote"`
}

// ======================================================
// GET /api/admin/appointments?limit=
// ======================================================

func (h *AdminAppointmentHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}

	var aps []models.Appointment
	if err := h.db.
		Preload("Client").
		Order("date DESC, time ASC, id DESC").
		Limit(limit).
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erreur lors du chargement de l'agenda.")
		return
	}

	out := make([]dto.AdminAppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, adminAppointmentDTO(&ap, &ap.Client))
	}

	c.JSON(http.StatusOK, gin.H{"appointments": out})
}

// ======================================================
// POST /api/admin/appointments/:id/status
// ======================================================

func (h *AdminAppointmentHandler) SetStatus(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_status", "Statut invalide.")
		return
	}

	ap, err := h.setStatus.Execute(c.Request.Context(), adminID, id, req.Status)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Statut invalide.")
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Rendez-vous introuvable.")
		case httperr.IsBusiness(err, "cannot_cancel"):
			httperr.BadRequest(c, "cannot_cancel", "Seuls les rendez-vous en attente ou confirmés peuvent être annulés.")
		case httperr.IsBusiness(err, "slot_taken"):
			httperr.Conflict(c, "slot_taken", "Ce jour est déjà réservé.")
		default:
			httperr.Internal(c, "failed_to_update_status", "Erreur lors du changement de statut.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": ap})
}

// ======================================================
// POST /api/admin/appointments/:id/admin-note
// ======================================================

func (h *AdminAppointmentHandler) SetAdminNote(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Rendez-vous introuvable.")
		return
	}

	var req AdminNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if err := h.db.Model(&ap).Update("admin_note", req.AdminNote).Error; err != nil {
		httperr.Internal(c, "failed_to_update_note", "Erreur lors de la mise à jour de la note.")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		ClientID: &ap.ClientID,
		Action:   "admin_note_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	h.db.First(&ap, id)
	c.JSON(http.StatusOK, gin.H{"appointment": ap})
}

// ======================================================
// HELPERS
// ======================================================

func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return 0, false
	}
	return uint(id), true
}
