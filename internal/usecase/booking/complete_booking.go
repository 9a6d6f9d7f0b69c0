package booking

import (
	"context"

	"github.com/crowncut-ph/crowncut-api/internal/audit"
	domain "github.com/crowncut-ph/crowncut-api/internal/domain/booking"
	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/models"
	"github.com/crowncut-ph/crowncut-api/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCompleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// Execute is the admin "done with this customer" action; the stamped
// completion time feeds the daily earnings aggregate.
func (uc *CompleteBooking) Execute(
	ctx context.Context,
	bookingID uint,
	adminID uint,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Complete(bk, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
