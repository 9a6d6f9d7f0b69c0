package booking

import (
	"context"
	"time"

	domain "github.com/crowncut-ph/crowncut-api/internal/domain/booking"
	"github.com/crowncut-ph/crowncut-api/internal/timezone"
)

type GetSlots struct {
	repo domain.Repository
}

func NewGetSlots(repo domain.Repository) *GetSlots {
	return &GetSlots{repo: repo}
}

// Execute lists the bookable half-hour slots of a date, minus those
// held by an active booking. The listing is advisory; creation
// re-validates under the allocation lock.
func (uc *GetSlots) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]string, error) {

	dayStart, dayEnd := timezone.DayBounds(date)

	taken, err := uc.repo.ListTakenSlots(ctx, barberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(date, taken), nil
}
