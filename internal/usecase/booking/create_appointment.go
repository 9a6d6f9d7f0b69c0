package booking

import (
	"context"
	"time"

	"github.com/crowncut-ph/crowncut-api/internal/audit"
	domain "github.com/crowncut-ph/crowncut-api/internal/domain/booking"
	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID   uint
	BarberID uint

	ServiceIDs    []uint
	Datetime      string
	PaymentMethod string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Booking, error) {

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	at, err := time.ParseInLocation(domain.SlotTimeLayout, in.Datetime, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_datetime")
	}

	services, err := uc.repo.ListServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	serviceID, totalPrice, _ := domain.Pricing(services)

	bk := &models.Booking{
		UserID:              in.UserID,
		BarberID:            in.BarberID,
		ServiceID:           serviceID,
		BookingType:         string(domain.TypeAppointment),
		AppointmentDatetime: &at,
		Status:              string(domain.InitialStatus(domain.TypeAppointment)),
		TotalPrice:          totalPrice,
		PaymentMethod:       in.PaymentMethod,
	}

	// The slot is re-validated inside the allocation transaction, so a
	// listing gone stale between GET /slots and this call cannot
	// double-book.
	if err := uc.repo.CreateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_booked",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
