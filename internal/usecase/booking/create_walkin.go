package booking

import (
	"context"

	"github.com/crowncut-ph/crowncut-api/internal/audit"
	domain "github.com/crowncut-ph/crowncut-api/internal/domain/booking"
	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateWalkInInput struct {
	UserID   uint
	BarberID uint

	ServiceIDs    []uint
	PaymentMethod string
}

// ======================================================
// USE CASE
// ======================================================

type CreateWalkIn struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateWalkIn(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateWalkIn {
	return &CreateWalkIn{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateWalkIn) Execute(
	ctx context.Context,
	in CreateWalkInInput,
) (*domain.WalkInTicket, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if barber.Status == domain.BarberOffDuty {
		return nil, httperr.ErrBusiness("barber_off_duty")
	}

	services, err := uc.repo.ListServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	serviceID, totalPrice, _ := domain.Pricing(services)

	bk := &models.Booking{
		UserID:        in.UserID,
		BarberID:      in.BarberID,
		ServiceID:     serviceID,
		BookingType:   string(domain.TypeWalkIn),
		Status:        string(domain.InitialStatus(domain.TypeWalkIn)),
		TotalPrice:    totalPrice,
		PaymentMethod: in.PaymentMethod,
	}

	if err := uc.repo.CreateBooking(ctx, bk); err != nil {
		return nil, err
	}

	peopleAhead, err := uc.repo.CountWalkInsAhead(ctx, in.BarberID, bk.QueueNumber)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "walk_in_joined",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return &domain.WalkInTicket{
		Booking:     bk,
		QueueNumber: bk.QueueNumber,
		PeopleAhead: peopleAhead,
	}, nil
}
