package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crowncut-ph/crowncut-api/internal/audit"
	"github.com/crowncut-ph/crowncut-api/internal/cache"
	domain "github.com/crowncut-ph/crowncut-api/internal/domain/booking"
	"github.com/crowncut-ph/crowncut-api/internal/dto"
	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/middleware"
	"github.com/crowncut-ph/crowncut-api/internal/models"
	"github.com/crowncut-ph/crowncut-api/internal/timezone"
	ucBooking "github.com/crowncut-ph/crowncut-api/internal/usecase/booking"
)

const queueCacheTTL = 10 * time.Second

const queueCountSubquery = `(SELECT COUNT(*) FROM bookings
	WHERE bookings.barber_id = barbers.id
	AND bookings.status IN ('pending', 'waiting', 'serving'))`

// ======================================================
// HANDLER
// ======================================================

type BarberHandler struct {
	db       *gorm.DB
	cache    *cache.Cache
	audit    *audit.Dispatcher
	getSlots *ucBooking.GetSlots
	tz       string
}

func NewBarberHandler(
	db *gorm.DB,
	c *cache.Cache,
	auditDispatcher *audit.Dispatcher,
	getSlots *ucBooking.GetSlots,
	tz string,
) *BarberHandler {
	return &BarberHandler{
		db:       db,
		cache:    c,
		audit:    auditDispatcher,
		getSlots: getSlots,
		tz:       tz,
	}
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []dto.BarberWithQueueDTO
	if h.cache.GetJSON(c.Request.Context(), cache.BarberListKey, &barbers) {
		c.JSON(200, barbers)
		return
	}

	if err := h.db.
		Model(&models.Barber{}).
		Select("barbers.*, " + queueCountSubquery + " AS queue_count").
		Order("barbers.name ASC").
		Scan(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Failed to list barbers.")
		return
	}

	h.cache.SetJSON(c.Request.Context(), cache.BarberListKey, barbers, queueCacheTTL)
	c.JSON(200, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var barber dto.BarberWithQueueDTO
	err := h.db.
		Model(&models.Barber{}).
		Select("barbers.*, "+queueCountSubquery+" AS queue_count").
		Where("barbers.id = ?", id).
		First(&barber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barber not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Failed to get barber.")
		return
	}

	c.JSON(200, barber)
}

// ======================================================
// LIVE QUEUE
// ======================================================

func (h *BarberHandler) Queue(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber ID.")
		return
	}

	key := cache.QueueKey(uint(id))

	var queue []dto.QueueEntryDTO
	if h.cache.GetJSON(c.Request.Context(), key, &queue) {
		c.JSON(200, gin.H{"queue": queue})
		return
	}

	if err := h.db.
		Model(&models.Booking{}).
		Select("bookings.id AS booking_id, bookings.queue_number, bookings.status, bookings.created_at, users.name AS customer_name").
		Joins("JOIN users ON users.id = bookings.user_id").
		Where(
			"bookings.barber_id = ? AND bookings.booking_type = ? AND bookings.status IN ?",
			id, string(domain.TypeWalkIn), domain.ActiveStatuses(),
		).
		Order("bookings.queue_number ASC").
		Scan(&queue).Error; err != nil {
		httperr.Internal(c, "failed_to_list_queue", "Failed to list queue.")
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, queue, queueCacheTTL)
	c.JSON(200, gin.H{"queue": queue})
}

// ======================================================
// SLOTS
// ======================================================

func (h *BarberHandler) Slots(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber ID.")
		return
	}

	loc := timezone.Location(h.tz)

	date := timezone.NowIn(h.tz)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation(domain.SlotDateLayout, dateStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		date = parsed
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), uint(id), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Failed to list slots.")
		return
	}

	c.JSON(200, slots)
}

// ======================================================
// STATUS (admin)
// ======================================================

type UpdateBarberStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *BarberHandler) UpdateStatus(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var req UpdateBarberStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status required.")
		return
	}

	if !domain.ValidBarberStatus(req.Status) {
		httperr.BadRequest(c, "invalid_status", "Invalid status.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	barber.Status = req.Status
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Failed to update barber.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.BarberListKey)

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_status_changed",
		Entity:   "barber",
		EntityID: &barber.ID,
		Metadata: map[string]any{"status": req.Status},
	})

	c.JSON(200, gin.H{"success": true, "status": barber.Status})
}
