package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crowncut-ph/crowncut-api/internal/audit"
	"github.com/crowncut-ph/crowncut-api/internal/cache"
	"github.com/crowncut-ph/crowncut-api/internal/config"
	"github.com/crowncut-ph/crowncut-api/internal/handlers"
	infraRepo "github.com/crowncut-ph/crowncut-api/internal/infra/repository"
	"github.com/crowncut-ph/crowncut-api/internal/middleware"
	"github.com/crowncut-ph/crowncut-api/internal/payments"
	"github.com/crowncut-ph/crowncut-api/internal/storage"
	"github.com/crowncut-ph/crowncut-api/internal/timezone"
	ucBooking "github.com/crowncut-ph/crowncut-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	queueCache := cache.New(cfg.RedisAddr)
	photoStore := storage.NewPhotoStore(cfg)
	gateway := payments.NewGateway(cfg.MercadoPagoToken)

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createWalkInUC := ucBooking.NewCreateWalkIn(bookingRepo, auditDispatcher)
	createAppointmentUC := ucBooking.NewCreateAppointment(bookingRepo, auditDispatcher, loc)
	updateBookingUC := ucBooking.NewUpdateBooking(bookingRepo, auditDispatcher, loc)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher, cfg.Timezone)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, auditDispatcher, cfg.Timezone)
	getSlotsUC := ucBooking.NewGetSlots(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db)
	walletHandler := handlers.NewWalletHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	barberHandler := handlers.NewBarberHandler(
		db,
		queueCache,
		auditDispatcher,
		getSlotsUC,
		cfg.Timezone,
	)

	bookingHandler := handlers.NewBookingHandler(
		db,
		queueCache,
		createWalkInUC,
		createAppointmentUC,
		updateBookingUC,
		cancelBookingUC,
		gateway,
		cfg.Timezone,
	)

	adminHandler := handlers.NewAdminHandler(
		db,
		queueCache,
		auditDispatcher,
		photoStore,
		completeBookingUC,
		cfg.Timezone,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC READS
		// ------------------------------
		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)
		api.GET("/barbers/:id/queue", barberHandler.Queue)
		api.GET("/barbers/:id/slots", barberHandler.Slots)
		api.GET("/services", serviceHandler.List)

		// ------------------------------
		// PROTECTED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", authHandler.Me)
			secured.GET("/wallet", walletHandler.Get)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings/walk-in", bookingHandler.CreateWalkIn)
			secured.POST("/bookings/appointment", bookingHandler.CreateAppointment)
			secured.GET("/bookings/my", bookingHandler.ListMine)
			secured.PATCH("/bookings/:id", bookingHandler.Update)
			secured.PUT("/bookings/:id", bookingHandler.Update)
			secured.DELETE("/bookings/:id", bookingHandler.Cancel)
			secured.POST("/bookings/:id/pay", bookingHandler.Pay)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/barbers", adminHandler.CreateBarber)
				admin.DELETE("/barbers/:id", adminHandler.DeleteBarber)
				admin.POST("/barbers/:id/photo", adminHandler.UploadBarberPhoto)
				admin.PATCH("/bookings/:id/complete", adminHandler.CompleteBooking)
				admin.GET("/dashboard", adminHandler.Dashboard)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}

			// Barber status is admin-gated but lives under /barbers to
			// match the client.
			secured.PATCH("/barbers/:id/status", middleware.RequireAdmin(), barberHandler.UpdateStatus)
		}
	}
}
