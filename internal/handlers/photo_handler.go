package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LeCasiNoze/BlackBox/internal/audit"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/imaging"
	"github.com/LeCasiNoze/BlackBox/internal/middleware"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	"github.com/LeCasiNoze/BlackBox/internal/storage"
)

// ======================================================
// HANDLER
// ======================================================

// PhotoHandler manages the before/after shots the admin attaches to a
// visit. Uploads are normalized to webp before landing in S3.
type PhotoHandler struct {
	db    *gorm.DB
	store storage.PhotoStore
	audit *audit.Dispatcher
}

func NewPhotoHandler(db *gorm.DB, store storage.PhotoStore, audit *audit.Dispatcher) *PhotoHandler {
	return &PhotoHandler{db: db, store: store, audit: audit}
}

// ======================================================
// GET /api/admin/appointments/:id/photos
// ======================================================

func (h *PhotoHandler) List(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var photos []models.AppointmentPhoto
	if err := h.db.
		Where("appointment_id = ?", id).
		Order("is_cover DESC, created_at ASC, id ASC").
		Find(&photos).Error; err != nil {

		httperr.Internal(c, "failed_to_list_photos", "Erreur lors du chargement des photos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// ======================================================
// POST /api/admin/appointments/:id/photos (multipart)
// ======================================================

func (h *PhotoHandler) Upload(c *gin.Context) {
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

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Photo obligatoire.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Photo illisible.")
		return
	}
	defer f.Close()

	webpBytes, err := imaging.ToWebP(f)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Format d'image non supporté.")
		return
	}

	key := fmt.Sprintf("appointments/%d/%s.webp", ap.ID, uuid.NewString())

	url, err := h.store.Put(c.Request.Context(), key, webpBytes, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_store_photo", "Erreur lors de l'enregistrement de la photo.")
		return
	}

	isCover := c.PostForm("isCover") == "1" || c.PostForm("isCover") == "true"

	photo := models.AppointmentPhoto{
		AppointmentID: ap.ID,
		URL:           url,
		IsCover:       isCover,
		Caption:       c.PostForm("caption"),
	}

	if err := h.db.Create(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_store_photo", "Erreur lors de l'enregistrement de la photo.")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		ClientID: &ap.ClientID,
		Action:   "photo_uploaded",
		Entity:   "appointment_photo",
		EntityID: &photo.ID,
	})

	c.JSON(http.StatusCreated, gin.H{"photo": photo})
}
