package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/crowncut-ph/crowncut-api/internal/domain/booking"
	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Booking (create / allocate)
// --------------------------------------------------

// CreateBooking runs the whole allocation inside one transaction:
// the barber's queue_state row is locked FOR UPDATE, so concurrent
// requests for the same barber serialize and the MAX+1 below cannot
// hand out the same number twice. Appointments re-check the slot
// under the same lock.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	bk *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := lockQueueState(tx, bk.BarberID); err != nil {
			return err
		}

		var last int
		row := tx.Model(&models.Booking{}).
			Where("barber_id = ?", bk.BarberID).
			Select("COALESCE(MAX(queue_number), 0)").
			Row()
		if err := row.Scan(&last); err != nil {
			return err
		}

		if bk.BookingType == string(domain.TypeAppointment) && bk.AppointmentDatetime != nil {
			var count int64
			if err := tx.Model(&models.Booking{}).
				Where(
					"barber_id = ? AND appointment_datetime = ? AND status IN ?",
					bk.BarberID, *bk.AppointmentDatetime, domain.ActiveStatuses(),
				).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return httperr.ErrBusiness("slot_taken")
			}
		}

		bk.QueueNumber = last + 1

		if err := tx.Create(bk).Error; err != nil {
			return err
		}

		// The stored counter is advisory; keep it in sync for dashboards.
		return tx.Model(&models.QueueState{}).
			Where("barber_id = ?", bk.BarberID).
			Update("last_queue_number", bk.QueueNumber).Error
	})
}

// lockQueueState takes the per-barber allocation lock, creating the
// counter row on the barber's first booking.
func lockQueueState(tx *gorm.DB, barberID uint) error {
	var qs models.QueueState

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("barber_id = ?", barberID).
		First(&qs).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.QueueState{BarberID: barberID}).Error; err != nil {
		return err
	}

	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("barber_id = ?", barberID).
		First(&qs).Error
}

func (r *BookingGormRepository) CountWalkInsAhead(
	ctx context.Context,
	barberID uint,
	queueNumber int,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"barber_id = ? AND booking_type = ? AND queue_number < ? AND status IN ?",
			barberID, string(domain.TypeWalkIn), queueNumber, domain.ActiveStatuses(),
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// --------------------------------------------------
// Booking (mutation)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var bk models.Booking
	if err := r.db.WithContext(ctx).First(&bk, id).Error; err != nil {
		return nil, err
	}
	return &bk, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	bk *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(bk).Error
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *BookingGormRepository) AssertSlotFree(
	ctx context.Context,
	barberID uint,
	at time.Time,
	excludeBookingID uint,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"barber_id = ? AND appointment_datetime = ? AND id <> ? AND status IN ?",
			barberID, at, excludeBookingID, domain.ActiveStatuses(),
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("slot_taken")
	}
	return nil
}

func (r *BookingGormRepository) ListTakenSlots(
	ctx context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]time.Time, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("appointment_datetime").
		Where(
			"barber_id = ? AND appointment_datetime >= ? AND appointment_datetime < ? AND status IN ?",
			barberID, dayStart, dayEnd, domain.ActiveStatuses(),
		).
		Order("appointment_datetime ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	taken := make([]time.Time, 0, len(bookings))
	for _, bk := range bookings {
		if bk.AppointmentDatetime != nil {
			taken = append(taken, *bk.AppointmentDatetime)
		}
	}
	return taken, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
