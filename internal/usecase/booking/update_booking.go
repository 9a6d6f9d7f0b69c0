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

type UpdateBookingInput struct {
	BookingID uint
	UserID    uint

	ServiceIDs    []uint
	Datetime      string
	PaymentMethod string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *UpdateBooking {
	return &UpdateBooking{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if bk.UserID != in.UserID {
		return nil, httperr.ErrBusiness("not_owner")
	}

	if err := domain.CanEdit(domain.Status(bk.Status)); err != nil {
		return nil, err
	}

	if len(in.ServiceIDs) > 0 {
		services, err := uc.repo.ListServices(ctx, in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		// Ids that resolve to nothing leave the booking's current
		// service and price untouched.
		if len(services) > 0 {
			serviceID, totalPrice, _ := domain.Pricing(services)
			bk.ServiceID = serviceID
			bk.TotalPrice = totalPrice
		}
	}

	if in.Datetime != "" {
		at, err := time.ParseInLocation(domain.SlotTimeLayout, in.Datetime, uc.loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_datetime")
		}

		if err := uc.repo.AssertSlotFree(ctx, bk.BarberID, at, bk.ID); err != nil {
			return nil, err
		}
		bk.AppointmentDatetime = &at
	}

	if in.PaymentMethod != "" {
		bk.PaymentMethod = in.PaymentMethod
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
