package booking

import (
	"context"
	"time"

	"github.com/crowncut-ph/crowncut-api/internal/models"
)

type Repository interface {
	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Services --------
	ListServices(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Booking (create / allocate) --------

	// CreateBooking assigns the next per-barber queue number and inserts
	// the row in one transaction, holding the barber's queue_state row
	// locked so concurrent allocations serialize. For appointments it
	// also re-checks the slot inside the same transaction and fails with
	// the slot_taken business error when another active booking holds it.
	CreateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	CountWalkInsAhead(
		ctx context.Context,
		barberID uint,
		queueNumber int,
	) (int, error)

	// -------- Booking (mutation) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	// -------- Slots --------
	AssertSlotFree(
		ctx context.Context,
		barberID uint,
		at time.Time,
		excludeBookingID uint,
	) error

	ListTakenSlots(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]time.Time, error)
}
