package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LeCasiNoze/BlackBox/internal/audit"
	"github.com/LeCasiNoze/BlackBox/internal/config"
	"github.com/LeCasiNoze/BlackBox/internal/handlers"
	infraRepo "github.com/LeCasiNoze/BlackBox/internal/infra/repository"
	"github.com/LeCasiNoze/BlackBox/internal/mail"
	"github.com/LeCasiNoze/BlackBox/internal/middleware"
	"github.com/LeCasiNoze/BlackBox/internal/redislock"
	"github.com/LeCasiNoze/BlackBox/internal/storage"
	ucBooking "github.com/LeCasiNoze/BlackBox/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	mailDispatcher := mail.NewDispatcher(mail.NewBrevoNotifier(cfg))

	var locker redislock.Locker = redislock.NopLocker{}
	if cfg.RedisAddr != "" {
		locker = redislock.NewRedisDayLocker(
			redislock.NewClient(cfg.RedisAddr),
			5*time.Second,
		)
	}

	photoStore := storage.NewS3PhotoStore(cfg)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	monthViewUC := ucBooking.NewGetMonthView(bookingRepo, cfg.Timezone)

	bookDayUC := ucBooking.NewBookDay(
		bookingRepo,
		locker,
		mailDispatcher,
		auditDispatcher,
	)

	cancelDayUC := ucBooking.NewCancelDay(
		bookingRepo,
		mailDispatcher,
		auditDispatcher,
		cfg.Timezone,
	)

	setStatusUC := ucBooking.NewSetStatus(
		bookingRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	submitReviewUC := ucBooking.NewSubmitReview(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	cardHandler := handlers.NewCardHandler(
		db,
		bookingRepo,
		monthViewUC,
		bookDayUC,
		cancelDayUC,
		submitReviewUC,
	)

	adminClientHandler := handlers.NewAdminClientHandler(db, auditDispatcher)
	adminAppointmentHandler := handlers.NewAdminAppointmentHandler(db, setStatusUC, auditDispatcher)
	photoHandler := handlers.NewPhotoHandler(db, photoStore, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// CARTE CLIENT (public)
		// ------------------------------
		// Public report of a finished day, linked from the card page.
		api.GET("/days/:date", cardHandler.GetDayReport)

		clientAPI := api.Group("/client")
		{
			clientAPI.GET("/:idOrSlug", cardHandler.GetCard)
			clientAPI.GET("/:idOrSlug/appointments", cardHandler.ListAppointments)
			clientAPI.POST("/:idOrSlug/book", cardHandler.Book)
			clientAPI.POST("/:idOrSlug/cancel", cardHandler.Cancel)
			clientAPI.POST("/:idOrSlug/appointments/:appointmentId/review", cardHandler.SubmitReview)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/clients", adminClientHandler.List)
			admin.POST("/clients", adminClientHandler.Create)
			admin.GET("/clients/:id", adminClientHandler.Get)
			admin.POST("/clients/:id/profile", adminClientHandler.UpdateProfile)
			admin.POST("/clients/:id/formula", adminClientHandler.AdjustFormula)

			admin.GET("/appointments", adminAppointmentHandler.List)
			admin.POST("/appointments/:id/status", adminAppointmentHandler.SetStatus)
			admin.POST("/appointments/:id/admin-note", adminAppointmentHandler.SetAdminNote)

			admin.GET("/appointments/:id/photos", photoHandler.List)
			admin.POST("/appointments/:id/photos", photoHandler.Upload)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
