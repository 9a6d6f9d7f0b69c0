package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crowncut-ph/crowncut-api/internal/cache"
	"github.com/crowncut-ph/crowncut-api/internal/dto"
	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/middleware"
	"github.com/crowncut-ph/crowncut-api/internal/models"
	"github.com/crowncut-ph/crowncut-api/internal/payments"
	"github.com/crowncut-ph/crowncut-api/internal/timezone"
	ucBooking "github.com/crowncut-ph/crowncut-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db    *gorm.DB
	cache *cache.Cache

	createWalkIn      *ucBooking.CreateWalkIn
	createAppointment *ucBooking.CreateAppointment
	updateBooking     *ucBooking.UpdateBooking
	cancelBooking     *ucBooking.CancelBooking

	gateway *payments.Gateway
	tz      string
}

func NewBookingHandler(
	db *gorm.DB,
	c *cache.Cache,
	createWalkIn *ucBooking.CreateWalkIn,
	createAppointment *ucBooking.CreateAppointment,
	updateBooking *ucBooking.UpdateBooking,
	cancelBooking *ucBooking.CancelBooking,
	gateway *payments.Gateway,
	tz string,
) *BookingHandler {
	return &BookingHandler{
		db:                db,
		cache:             c,
		createWalkIn:      createWalkIn,
		createAppointment: createAppointment,
		updateBooking:     updateBooking,
		cancelBooking:     cancelBooking,
		gateway:           gateway,
		tz:                tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWalkInRequest struct {
	BarberID      uint   `json:"barberId" binding:"required"`
	ServiceIDs    []uint `json:"serviceIds"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type CreateAppointmentRequest struct {
	BarberID      uint   `json:"barberId" binding:"required"`
	ServiceIDs    []uint `json:"serviceIds"`
	Datetime      string `json:"datetime" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type UpdateBookingRequest struct {
	ServiceIDs          []uint `json:"serviceIds"`
	AppointmentDatetime string `json:"appointment_datetime"`
	PaymentMethod       string `json:"paymentMethod"`
}

type PayRequest struct {
	Method string `json:"method" binding:"required"`
}

// ======================================================
// CREATE — WALK-IN
// ======================================================

func (h *BookingHandler) CreateWalkIn(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateWalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Barber ID and payment method required.")
		return
	}

	ticket, err := h.createWalkIn.Execute(c.Request.Context(), ucBooking.CreateWalkInInput{
		UserID:        userID,
		BarberID:      req.BarberID,
		ServiceIDs:    req.ServiceIDs,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_join_queue")
		return
	}

	h.invalidateQueue(c, req.BarberID)

	c.JSON(201, gin.H{
		"booking":     ticket.Booking,
		"queueNumber": ticket.QueueNumber,
		"peopleAhead": ticket.PeopleAhead,
		"message":     fmt.Sprintf("Your Queue Number: #%d", ticket.QueueNumber),
	})
}

// ======================================================
// CREATE — APPOINTMENT
// ======================================================

func (h *BookingHandler) CreateAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Barber ID and datetime required.")
		return
	}

	bk, err := h.createAppointment.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		UserID:        userID,
		BarberID:      req.BarberID,
		ServiceIDs:    req.ServiceIDs,
		Datetime:      req.Datetime,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_book_appointment")
		return
	}

	h.invalidateQueue(c, req.BarberID)

	c.JSON(201, gin.H{
		"booking":     bk,
		"queueNumber": bk.QueueNumber,
		"message":     "Appointment booked. Appointments are served before walk-ins.",
	})
}

// ======================================================
// LIST MINE
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var bookings []dto.BookingListDTO
	if err := h.db.
		Model(&models.Booking{}).
		Select("bookings.*, barbers.name AS barber_name, services.name AS service_name").
		Joins("JOIN barbers ON barbers.id = bookings.barber_id").
		Joins("LEFT JOIN services ON services.id = bookings.service_id").
		Where("bookings.user_id = ? AND bookings.status <> 'cancelled'", userID).
		Order("CASE WHEN bookings.status IN ('pending', 'waiting', 'serving') THEN 0 ELSE 1 END, bookings.created_at DESC").
		Scan(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	c.JSON(200, bookings)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking ID.")
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	bk, err := h.updateBooking.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		BookingID:     uint(bookingID),
		UserID:        userID,
		ServiceIDs:    req.ServiceIDs,
		Datetime:      req.AppointmentDatetime,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_update_booking")
		return
	}

	h.invalidateQueue(c, bk.BarberID)

	var updated dto.BookingListDTO
	if err := h.db.
		Model(&models.Booking{}).
		Select("bookings.*, barbers.name AS barber_name, services.name AS service_name").
		Joins("JOIN barbers ON barbers.id = bookings.barber_id").
		Joins("LEFT JOIN services ON services.id = bookings.service_id").
		Where("bookings.id = ?", bk.ID).
		First(&updated).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found after update.")
		return
	}

	c.JSON(200, updated)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking ID.")
		return
	}

	bk, err := h.cancelBooking.Execute(c.Request.Context(), uint(bookingID), userID)
	if err != nil {
		writeBusiness(c, err, "failed_to_cancel_booking")
		return
	}

	h.invalidateQueue(c, bk.BarberID)

	c.JSON(200, gin.H{"success": true, "message": "Booking cancelled"})
}

// ======================================================
// PAY
// ======================================================

func (h *BookingHandler) Pay(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	email, _ := c.Get(middleware.ContextUserEmail)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking ID.")
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Payment method required.")
		return
	}

	var bk models.Booking
	if err := h.db.First(&bk, bookingID).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}
	if bk.UserID != userID {
		httperr.Forbidden(c, "not_owner", "Not your booking.")
		return
	}

	method := normalizePaymentMethod(req.Method)

	var gatewayRef string
	if method != "cash" && h.gateway != nil {
		payerEmail, _ := email.(string)
		ref, err := h.gateway.Charge(
			c.Request.Context(),
			bk.TotalPrice,
			fmt.Sprintf("CrownCut booking #%d", bk.ID),
			payerEmail,
		)
		if err != nil {
			httperr.BadRequest(c, "payment_failed", "Payment could not be processed.")
			return
		}
		gatewayRef = ref
	}

	bk.PaymentMethod = method
	if err := h.db.Save(&bk).Error; err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Failed to update booking.")
		return
	}

	payment := models.Payment{
		BookingID:  bk.ID,
		AmountPHP:  bk.TotalPrice,
		Method:     method,
		Status:     "paid",
		GatewayRef: gatewayRef,
		PaidAt:     timezone.NowIn(h.tz),
	}
	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_record_payment", "Failed to record payment.")
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Payment recorded"})
}

func normalizePaymentMethod(method string) string {
	switch method {
	case "cash", "e-payment", "card":
		return method
	}
	return "pay_now"
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) invalidateQueue(c *gin.Context, barberID uint) {
	h.cache.Invalidate(
		c.Request.Context(),
		cache.BarberListKey,
		cache.QueueKey(barberID),
	)
}
