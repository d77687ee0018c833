package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LeCasiNoze/BlackBox/internal/audit"
	domain "github.com/LeCasiNoze/BlackBox/internal/domain/booking"
	"github.com/LeCasiNoze/BlackBox/internal/dto"
	"github.com/LeCasiNoze/BlackBox/internal/httperr"
	"github.com/LeCasiNoze/BlackBox/internal/httpresp"
	"github.com/LeCasiNoze/BlackBox/internal/middleware"
	"github.com/LeCasiNoze/BlackBox/internal/models"
	"github.com/LeCasiNoze/BlackBox/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AdminClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminClientHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminClientHandler {
	return &AdminClientHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

// Pointer fields: an omitted field keeps its stored value.
type ClientProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`

	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	PostalCode   *string `json:"postalCode"`
	City         *string `json:"city"`

	VehicleModel *string `json:"vehicleModel"`
	VehiclePlate *string `json:"vehiclePlate"`

	FormulaName      *string `json:"formulaName"`
	FormulaTotal     *int    `json:"formulaTotal"`
	FormulaRemaining *int    `json:"formulaRemaining"`

	Notes *string `json:"notes"`
}

type FormulaRequest struct {
	Mode      string `json:"mode" binding:"required"`
	Total     *int   `json:"total"`
	Remaining *int   `json:"remaining"`
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *AdminClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR LOWER(card_code) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ? OR LOWER(vehicle_plate) LIKE ?",
			like, like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erreur lors du chargement des clients.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE (card code auto-issued)
// ======================================================

func (h *AdminClientHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	var req ClientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.Email != nil && *req.Email != "" && !validators.IsEmailDomainValid(*req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "Le domaine de l'e-mail semble invalide.")
		return
	}

	var client models.Client

	err := h.db.Transaction(func(tx *gorm.DB) error {

		// Highest issued code, same ordering trick as the card printer
		// uses: length first so BBX-100 beats BBX-99.
		var last models.Client
		lastCode := ""
		if err := tx.
			Where("card_code LIKE ?", domain.CardCodePrefix+"-%").
			Order("LENGTH(card_code) DESC, card_code DESC").
			First(&last).Error; err == nil {
			lastCode = last.CardCode
		}

		code := domain.NextCardCode(lastCode)

		client = models.Client{
			Slug:     domain.SlugForCardCode(code),
			CardCode: code,
		}
		applyProfile(&client, &req)

		return tx.Create(&client).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erreur lors de la création du client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		ClientID: &client.ID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: &client.ID,
	})

	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// ======================================================
// GET ONE (profile + history)
// ======================================================

func (h *AdminClientHandler) Get(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Where("client_id = ?", client.ID).
		Order("date ASC, time ASC, id ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erreur lors du chargement des rendez-vous.")
		return
	}

	out := make([]dto.AdminAppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, adminAppointmentDTO(&ap, client))
	}

	c.JSON(http.StatusOK, gin.H{
		"client":       client,
		"appointments": out,
	})
}

// ======================================================
// UPDATE PROFILE (partial)
// ======================================================

func (h *AdminClientHandler) UpdateProfile(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	var req ClientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.Email != nil && *req.Email != "" && !validators.IsEmailDomainValid(*req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "Le domaine de l'e-mail semble invalide.")
		return
	}

	applyProfile(client, &req)

	if err := h.db.Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erreur lors de la mise à jour du client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		ClientID: &client.ID,
		Action:   "client_profile_updated",
		Entity:   "client",
		EntityID: &client.ID,
	})

	c.JSON(http.StatusOK, gin.H{"client": client})
}

// ======================================================
// FORMULA (reset / empty / custom)
// ======================================================

func (h *AdminClientHandler) AdjustFormula(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	var req FormulaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_mode", "Mode invalide.")
		return
	}

	switch req.Mode {
	case "reset":
		client.FormulaRemaining = client.FormulaTotal
	case "empty":
		client.FormulaRemaining = 0
	case "custom":
		if req.Total != nil && *req.Total >= 0 {
			client.FormulaTotal = *req.Total
		}
		if req.Remaining != nil && *req.Remaining >= 0 {
			client.FormulaRemaining = *req.Remaining
		}
		if client.FormulaRemaining > client.FormulaTotal {
			client.FormulaRemaining = client.FormulaTotal
		}
	default:
		httperr.BadRequest(c, "invalid_mode", "Mode invalide.")
		return
	}

	if err := h.db.Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erreur lors de la mise à jour du forfait.")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		ClientID: &client.ID,
		Action:   "formula_adjusted",
		Entity:   "client",
		EntityID: &client.ID,
		Metadata: map[string]any{
			"mode":      req.Mode,
			"total":     client.FormulaTotal,
			"remaining": client.FormulaRemaining,
		},
	})

	c.JSON(http.StatusOK, gin.H{"client": client})
}

// ======================================================
// HELPERS
// ======================================================

func (h *AdminClientHandler) loadClient(c *gin.Context) (*models.Client, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return nil, false
	}

	var client models.Client
	if err := h.db.First(&client, uint(id)).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client introuvable.")
		return nil, false
	}
	return &client, true
}

// applyProfile copies the provided fields onto the client, recomputes
// the display name and keeps remaining within [0, total].
func applyProfile(client *models.Client, req *ClientProfileRequest) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	setString(&client.FirstName, req.FirstName)
	setString(&client.LastName, req.LastName)
	setString(&client.Email, req.Email)
	setString(&client.Phone, req.Phone)
	setString(&client.Company, req.Company)
	setString(&client.AddressLine1, req.AddressLine1)
	setString(&client.AddressLine2, req.AddressLine2)
	setString(&client.PostalCode, req.PostalCode)
	setString(&client.City, req.City)
	setString(&client.VehicleModel, req.VehicleModel)
	setString(&client.VehiclePlate, req.VehiclePlate)
	setString(&client.FormulaName, req.FormulaName)
	setString(&client.Notes, req.Notes)

	if req.FirstName != nil || req.LastName != nil {
		parts := []string{}
		if client.FirstName != "" {
			parts = append(parts, client.FirstName)
		}
		if client.LastName != "" {
			parts = append(parts, client.LastName)
		}
		if full := strings.Join(parts, " "); full != "" {
			client.FullName = full
		}
	}

	if req.FormulaTotal != nil && *req.FormulaTotal >= 0 {
		client.FormulaTotal = *req.FormulaTotal
	}
	if req.FormulaRemaining != nil && *req.FormulaRemaining >= 0 {
		client.FormulaRemaining = *req.FormulaRemaining
	}
	if client.FormulaRemaining > client.FormulaTotal {
		client.FormulaRemaining = client.FormulaTotal
	}
}

func adminAppointmentDTO(ap *models.Appointment, client *models.Client) dto.AdminAppointmentDTO {
	return dto.AdminAppointmentDTO{
		ID:           ap.ID,
		ClientID:     ap.ClientID,
		Date:         ap.Date,
		Time:         ap.Time,
		Status:       ap.Status,
		Location:     ap.Location,
		ClientNote:   ap.ClientNote,
		AdminNote:    ap.AdminNote,
		CreatedAt:    ap.CreatedAt,
		UpdatedAt:    ap.UpdatedAt,
		ClientName:   client.FullName,
		VehicleModel: client.VehicleModel,
		VehiclePlate: client.VehiclePlate,
	}
}
