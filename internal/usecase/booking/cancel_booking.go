package booking

import (
	"context"

	"github.com/crowncut-ph/crowncut-api/internal/audit"
	domain "github.com/crowncut-ph/crowncut-api/internal/domain/booking"
	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/models"
	"github.com/crowncut-ph/crowncut-api/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// Execute marks the booking cancelled rather than deleting the row,
// so queue numbers stay monotonic and history survives for reporting.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if bk.UserID != userID {
		return nil, httperr.ErrBusiness("not_owner")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Cancel(bk, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
