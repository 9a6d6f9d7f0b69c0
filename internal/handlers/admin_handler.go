package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crowncut-ph/crowncut-api/internal/audit"
	"github.com/crowncut-ph/crowncut-api/internal/cache"
	domain "github.com/crowncut-ph/crowncut-api/internal/domain/booking"
	"github.com/crowncut-ph/crowncut-api/internal/dto"
	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/middleware"
	"github.com/crowncut-ph/crowncut-api/internal/models"
	"github.com/crowncut-ph/crowncut-api/internal/storage"
	"github.com/crowncut-ph/crowncut-api/internal/timezone"
	ucBooking "github.com/crowncut-ph/crowncut-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db     *gorm.DB
	cache  *cache.Cache
	audit  *audit.Dispatcher
	photos *storage.PhotoStore

	completeBooking *ucBooking.CompleteBooking
	tz              string
}

func NewAdminHandler(
	db *gorm.DB,
	c *cache.Cache,
	auditDispatcher *audit.Dispatcher,
	photos *storage.PhotoStore,
	completeBooking *ucBooking.CompleteBooking,
	tz string,
) *AdminHandler {
	return &AdminHandler{
		db:              db,
		cache:           c,
		audit:           auditDispatcher,
		photos:          photos,
		completeBooking: completeBooking,
		tz:              tz,
	}
}

// ======================================================
// BARBERS
// ======================================================

type CreateBarberRequest struct {
	Name            string `json:"name" binding:"required"`
	YearsExperience int    `json:"years_experience"`
}

func (h *AdminHandler) CreateBarber(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Barber name is required.")
		return
	}

	barber := models.Barber{
		Name:            req.Name,
		YearsExperience: req.YearsExperience,
		Status:          domain.BarberAvailable,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Failed to create barber.")
		return
	}

	// Pre-create the counter row so the first allocation skips the
	// lazy-init path.
	if err := h.db.Create(&models.QueueState{BarberID: barber.ID}).Error; err != nil {
		httperr.Internal(c, "failed_to_create_queue_state", "Failed to create barber.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.BarberListKey)

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(201, dto.BarberWithQueueDTO{
		ID:              barber.ID,
		Name:            barber.Name,
		PhotoURL:        barber.PhotoURL,
		YearsExperience: barber.YearsExperience,
		Status:          barber.Status,
		QueueCount:      0,
		CreatedAt:       barber.CreatedAt,
		UpdatedAt:       barber.UpdatedAt,
	})
}

func (h *AdminHandler) DeleteBarber(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	barberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber ID.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	if err := h.db.Where("barber_id = ?", barber.ID).Delete(&models.QueueState{}).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Failed to delete barber.")
		return
	}

	// Bookings cascade via the FK constraint.
	if err := h.db.Delete(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Failed to delete barber.")
		return
	}

	h.cache.Invalidate(
		c.Request.Context(),
		cache.BarberListKey,
		cache.QueueKey(barber.ID),
	)

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_deleted",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(200, gin.H{"success": true, "message": "Barber deleted"})
}

// ======================================================
// BARBER PHOTO
// ======================================================

func (h *AdminHandler) UploadBarberPhoto(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	if h.photos == nil {
		httperr.BadRequest(c, "photo_storage_not_configured", "Photo storage is not configured.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Photo file is required.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Could not read photo.")
		return
	}
	defer src.Close()

	url, err := h.photos.UploadBarberPhoto(c.Request.Context(), barber.ID, src)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Could not process photo.")
		return
	}

	barber.PhotoURL = url
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Failed to update barber.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.BarberListKey)

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_photo_updated",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(200, gin.H{"photo_url": url})
}

// ======================================================
// COMPLETE BOOKING
// ======================================================

func (h *AdminHandler) CompleteBooking(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking ID.")
		return
	}

	bk, err := h.completeBooking.Execute(c.Request.Context(), uint(bookingID), adminID)
	if err != nil {
		writeBusiness(c, err, "failed_to_complete_booking")
		return
	}

	// Advisory pointer for the queue display; stale on failure, fixed by
	// the next completion.
	h.db.Model(&models.QueueState{}).
		Where("barber_id = ?", bk.BarberID).
		Update("current_serving", bk.QueueNumber)

	h.cache.Invalidate(
		c.Request.Context(),
		cache.BarberListKey,
		cache.QueueKey(bk.BarberID),
	)

	c.JSON(200, gin.H{"success": true})
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	var barbers []dto.BarberWithQueueDTO
	if err := h.db.
		Model(&models.Barber{}).
		Select("barbers.*, " + queueCountSubquery + " AS queue_count").
		Scan(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to load dashboard.")
		return
	}

	var queueList []dto.BookingListDTO
	if err := h.db.
		Model(&models.Booking{}).
		Select("bookings.*, users.name AS customer_name, barbers.name AS barber_name, services.name AS service_name").
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN barbers ON barbers.id = bookings.barber_id").
		Joins("LEFT JOIN services ON services.id = bookings.service_id").
		Where("bookings.status IN ?", domain.ActiveStatuses()).
		Order("CASE WHEN bookings.booking_type = 'appointment' THEN 0 ELSE 1 END, bookings.queue_number ASC").
		Scan(&queueList).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to load dashboard.")
		return
	}

	dayStart, dayEnd := timezone.DayBounds(timezone.NowIn(h.tz))

	var dailyEarnings float64
	row := h.db.
		Model(&models.Booking{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("status = 'completed' AND completed_at >= ? AND completed_at < ?", dayStart, dayEnd).
		Row()
	if err := row.Scan(&dailyEarnings); err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to load dashboard.")
		return
	}

	var completedToday []dto.BookingListDTO
	if err := h.db.
		Model(&models.Booking{}).
		Select("bookings.*, users.name AS customer_name, barbers.name AS barber_name, services.name AS service_name").
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN barbers ON barbers.id = bookings.barber_id").
		Joins("LEFT JOIN services ON services.id = bookings.service_id").
		Where("bookings.status = 'completed' AND bookings.completed_at >= ? AND bookings.completed_at < ?", dayStart, dayEnd).
		Order("bookings.completed_at DESC").
		Scan(&completedToday).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to load dashboard.")
		return
	}

	c.JSON(200, gin.H{
		"barbers":        barbers,
		"queueList":      queueList,
		"dailyEarnings":  dailyEarnings,
		"completedToday": completedToday,
	})
}
