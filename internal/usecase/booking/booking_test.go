package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/crowncut-ph/crowncut-api/internal/domain/booking"
	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/models"
)

// fakeRepo mirrors the gorm repository's allocation semantics in
// memory: the mutex stands in for the per-barber row lock, so queue
// numbers and slot checks behave like the real transaction.
type fakeRepo struct {
	mu sync.Mutex

	barbers  map[uint]*models.Barber
	services map[uint]models.Service
	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:  map[uint]*models.Barber{},
		services: map[uint]models.Service{},
		bookings: map[uint]*models.Booking{},
		nextID:   1,
	}
}

func (r *fakeRepo) addBarber(id uint, status string) {
	r.barbers[id] = &models.Barber{ID: id, Name: "Test Barber", Status: status}
}

func (r *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.barbers[id]
	if !ok {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	return b, nil
}

func (r *fakeRepo) ListServices(_ context.Context, ids []uint) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Service
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, bk *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	last := 0
	for _, existing := range r.bookings {
		if existing.BarberID == bk.BarberID && existing.QueueNumber > last {
			last = existing.QueueNumber
		}
	}

	if bk.BookingType == string(domain.TypeAppointment) && bk.AppointmentDatetime != nil {
		if r.slotHeldLocked(bk.BarberID, *bk.AppointmentDatetime, 0) {
			return httperr.ErrBusiness("slot_taken")
		}
	}

	bk.QueueNumber = last + 1
	bk.ID = r.nextID
	r.nextID++

	stored := *bk
	r.bookings[bk.ID] = &stored
	return nil
}

func (r *fakeRepo) CountWalkInsAhead(_ context.Context, barberID uint, queueNumber int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, bk := range r.bookings {
		if bk.BarberID == barberID &&
			bk.BookingType == string(domain.TypeWalkIn) &&
			bk.QueueNumber < queueNumber &&
			domain.IsActive(domain.Status(bk.Status)) {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bk, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	copied := *bk
	return &copied, nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, bk *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *bk
	r.bookings[bk.ID] = &stored
	return nil
}

func (r *fakeRepo) AssertSlotFree(_ context.Context, barberID uint, at time.Time, excludeBookingID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slotHeldLocked(barberID, at, excludeBookingID) {
		return httperr.ErrBusiness("slot_taken")
	}
	return nil
}

func (r *fakeRepo) ListTakenSlots(_ context.Context, barberID uint, dayStart, dayEnd time.Time) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var taken []time.Time
	for _, bk := range r.bookings {
		if bk.BarberID != barberID || bk.AppointmentDatetime == nil {
			continue
		}
		if !domain.IsActive(domain.Status(bk.Status)) {
			continue
		}
		at := *bk.AppointmentDatetime
		if !at.Before(dayStart) && at.Before(dayEnd) {
			taken = append(taken, at)
		}
	}
	return taken, nil
}

func (r *fakeRepo) slotHeldLocked(barberID uint, at time.Time, excludeBookingID uint) bool {
	for _, bk := range r.bookings {
		if bk.ID == excludeBookingID || bk.BarberID != barberID {
			continue
		}
		if bk.AppointmentDatetime == nil || !bk.AppointmentDatetime.Equal(at) {
			continue
		}
		if domain.IsActive(domain.Status(bk.Status)) {
			return true
		}
	}
	return false
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// WALK-INS
// ======================================================

func TestCreateWalkIn_AssignsSequentialQueueNumbers(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	uc := NewCreateWalkIn(repo, nil)
	ctx := context.Background()

	first, err := uc.Execute(ctx, CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.QueueNumber)
	assert.Equal(t, 0, first.PeopleAhead)

	second, err := uc.Execute(ctx, CreateWalkInInput{UserID: 11, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.QueueNumber)
	assert.Equal(t, 1, second.PeopleAhead)
}

func TestCreateWalkIn_DefaultsWhenNoServices(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	uc := NewCreateWalkIn(repo, nil)

	ticket, err := uc.Execute(context.Background(), CreateWalkInInput{
		UserID:        10,
		BarberID:      1,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(domain.DefaultServiceID), ticket.Booking.ServiceID)
	assert.Equal(t, float64(domain.DefaultPricePHP), ticket.Booking.TotalPrice)
	assert.Equal(t, string(domain.StatusWaiting), ticket.Booking.Status)
}

func TestCreateWalkIn_CountersAreIndependentPerBarber(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)
	repo.addBarber(2, domain.BarberAvailable)

	uc := NewCreateWalkIn(repo, nil)
	ctx := context.Background()

	a, err := uc.Execute(ctx, CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)
	b, err := uc.Execute(ctx, CreateWalkInInput{UserID: 11, BarberID: 2, PaymentMethod: "cash"})
	require.NoError(t, err)

	assert.Equal(t, 1, a.QueueNumber)
	assert.Equal(t, 1, b.QueueNumber)
}

func TestCreateWalkIn_RejectsOffDutyBarber(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberOffDuty)

	uc := NewCreateWalkIn(repo, nil)

	_, err := uc.Execute(context.Background(), CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	assert.True(t, httperr.IsBusiness(err, "barber_off_duty"))
}

func TestCreateWalkIn_UnknownBarber(t *testing.T) {
	repo := newFakeRepo()

	uc := NewCreateWalkIn(repo, nil)

	_, err := uc.Execute(context.Background(), CreateWalkInInput{UserID: 10, BarberID: 99, PaymentMethod: "cash"})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}

func TestCreateWalkIn_ConcurrentRequestsGetUniqueNumbers(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	uc := NewCreateWalkIn(repo, nil)
	ctx := context.Background()

	const n = 20
	numbers := make(chan int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			ticket, err := uc.Execute(ctx, CreateWalkInInput{
				UserID:        userID,
				BarberID:      1,
				PaymentMethod: "cash",
			})
			if err != nil {
				t.Error(err)
				return
			}
			numbers <- ticket.QueueNumber
		}(uint(100 + i))
	}
	wg.Wait()
	close(numbers)

	seen := map[int]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "queue number %d handed out twice", num)
		assert.GreaterOrEqual(t, num, 1)
		assert.LessOrEqual(t, num, n)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestWalkInAhead_CompletedBookingsDoNotCount(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	createUC := NewCreateWalkIn(repo, nil)
	completeUC := NewCompleteBooking(repo, nil, "UTC")
	ctx := context.Background()

	first, err := createUC.Execute(ctx, CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	second, err := createUC.Execute(ctx, CreateWalkInInput{UserID: 11, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)
	require.Equal(t, 1, second.PeopleAhead)

	_, err = completeUC.Execute(ctx, first.Booking.ID, 1)
	require.NoError(t, err)

	ahead, err := repo.CountWalkInsAhead(ctx, 1, second.QueueNumber)
	require.NoError(t, err)
	assert.Equal(t, 0, ahead)
}

// ======================================================
// APPOINTMENTS
// ======================================================

func TestCreateAppointment_TakenSlotIsRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	uc := NewCreateAppointment(repo, nil, time.UTC)
	ctx := context.Background()

	in := CreateAppointmentInput{
		UserID:        10,
		BarberID:      1,
		Datetime:      "2025-06-02T10:00:00",
		PaymentMethod: "cash",
	}

	_, err := uc.Execute(ctx, in)
	require.NoError(t, err)

	in.UserID = 11
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestCreateAppointment_InvalidDatetime(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	uc := NewCreateAppointment(repo, nil, time.UTC)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:        10,
		BarberID:      1,
		Datetime:      "not-a-datetime",
		PaymentMethod: "cash",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_datetime"))
}

func TestCreateAppointment_SharesQueueCounterWithWalkIns(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	walkInUC := NewCreateWalkIn(repo, nil)
	apptUC := NewCreateAppointment(repo, nil, time.UTC)
	ctx := context.Background()

	ticket, err := walkInUC.Execute(ctx, CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)
	require.Equal(t, 1, ticket.QueueNumber)

	bk, err := apptUC.Execute(ctx, CreateAppointmentInput{
		UserID:        11,
		BarberID:      1,
		Datetime:      "2025-06-02T10:00:00",
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, bk.QueueNumber)
	assert.Equal(t, string(domain.StatusPending), bk.Status)
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	apptUC := NewCreateAppointment(repo, nil, time.UTC)
	cancelUC := NewCancelBooking(repo, nil, "UTC")
	ctx := context.Background()

	in := CreateAppointmentInput{
		UserID:        10,
		BarberID:      1,
		Datetime:      "2025-06-02T10:00:00",
		PaymentMethod: "cash",
	}

	bk, err := apptUC.Execute(ctx, in)
	require.NoError(t, err)

	_, err = cancelUC.Execute(ctx, bk.ID, 10)
	require.NoError(t, err)

	in.UserID = 11
	rebooked, err := apptUC.Execute(ctx, in)
	require.NoError(t, err)
	assert.Greater(t, rebooked.QueueNumber, bk.QueueNumber)
}

// ======================================================
// SLOTS
// ======================================================

func TestGetSlots_ExcludesActiveAppointments(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	apptUC := NewCreateAppointment(repo, nil, time.UTC)
	slotsUC := NewGetSlots(repo)
	ctx := context.Background()

	_, err := apptUC.Execute(ctx, CreateAppointmentInput{
		UserID:        10,
		BarberID:      1,
		Datetime:      "2025-06-02T10:00:00",
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	slots, err := slotsUC.Execute(ctx, 1, date)
	require.NoError(t, err)

	assert.Len(t, slots, 16)
	assert.NotContains(t, slots, "2025-06-02T10:00:00")
}

// ======================================================
// UPDATE / CANCEL / COMPLETE
// ======================================================

func TestUpdateBooking_OwnerOnly(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	createUC := NewCreateWalkIn(repo, nil)
	updateUC := NewUpdateBooking(repo, nil, time.UTC)
	ctx := context.Background()

	ticket, err := createUC.Execute(ctx, CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	_, err = updateUC.Execute(ctx, UpdateBookingInput{
		BookingID:     ticket.Booking.ID,
		UserID:        99,
		PaymentMethod: "card",
	})
	assert.True(t, httperr.IsBusiness(err, "not_owner"))
}

func TestUpdateBooking_RepricesSelectedServices(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)
	repo.services[2] = models.Service{ID: 2, Name: "Beard Trim", PricePHP: 150, DurationMinutes: 30}
	repo.services[3] = models.Service{ID: 3, Name: "Hair Wash", PricePHP: 100, DurationMinutes: 15}

	createUC := NewCreateWalkIn(repo, nil)
	updateUC := NewUpdateBooking(repo, nil, time.UTC)
	ctx := context.Background()

	ticket, err := createUC.Execute(ctx, CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	updated, err := updateUC.Execute(ctx, UpdateBookingInput{
		BookingID:  ticket.Booking.ID,
		UserID:     10,
		ServiceIDs: []uint{2, 3},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(2), updated.ServiceID)
	assert.Equal(t, 250.0, updated.TotalPrice)
}

func TestUpdateBooking_UnknownServiceIDsKeepCurrentService(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)
	repo.services[2] = models.Service{ID: 2, Name: "Beard Trim", PricePHP: 150, DurationMinutes: 30}

	createUC := NewCreateWalkIn(repo, nil)
	updateUC := NewUpdateBooking(repo, nil, time.UTC)
	ctx := context.Background()

	ticket, err := createUC.Execute(ctx, CreateWalkInInput{
		UserID: 10, BarberID: 1, ServiceIDs: []uint{2}, PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.Equal(t, uint(2), ticket.Booking.ServiceID)

	updated, err := updateUC.Execute(ctx, UpdateBookingInput{
		BookingID:  ticket.Booking.ID,
		UserID:     10,
		ServiceIDs: []uint{999},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(2), updated.ServiceID)
	assert.Equal(t, 150.0, updated.TotalPrice)
}

func TestUpdateBooking_RescheduleIntoTakenSlotFails(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	apptUC := NewCreateAppointment(repo, nil, time.UTC)
	updateUC := NewUpdateBooking(repo, nil, time.UTC)
	ctx := context.Background()

	first, err := apptUC.Execute(ctx, CreateAppointmentInput{
		UserID: 10, BarberID: 1, Datetime: "2025-06-02T10:00:00", PaymentMethod: "cash",
	})
	require.NoError(t, err)

	second, err := apptUC.Execute(ctx, CreateAppointmentInput{
		UserID: 11, BarberID: 1, Datetime: "2025-06-02T11:00:00", PaymentMethod: "cash",
	})
	require.NoError(t, err)

	_, err = updateUC.Execute(ctx, UpdateBookingInput{
		BookingID: second.ID,
		UserID:    11,
		Datetime:  first.AppointmentDatetime.Format(domain.SlotTimeLayout),
	})
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestUpdateBooking_RescheduleToOwnSlotIsAllowed(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	apptUC := NewCreateAppointment(repo, nil, time.UTC)
	updateUC := NewUpdateBooking(repo, nil, time.UTC)
	ctx := context.Background()

	bk, err := apptUC.Execute(ctx, CreateAppointmentInput{
		UserID: 10, BarberID: 1, Datetime: "2025-06-02T10:00:00", PaymentMethod: "cash",
	})
	require.NoError(t, err)

	_, err = updateUC.Execute(ctx, UpdateBookingInput{
		BookingID: bk.ID,
		UserID:    10,
		Datetime:  "2025-06-02T10:00:00",
	})
	assert.NoError(t, err)
}

func TestCancelBooking_OwnerOnly(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	createUC := NewCreateWalkIn(repo, nil)
	cancelUC := NewCancelBooking(repo, nil, "UTC")
	ctx := context.Background()

	ticket, err := createUC.Execute(ctx, CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	_, err = cancelUC.Execute(ctx, ticket.Booking.ID, 99)
	assert.True(t, httperr.IsBusiness(err, "not_owner"))

	bk, err := cancelUC.Execute(ctx, ticket.Booking.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), bk.Status)
	assert.NotNil(t, bk.CancelledAt)
}

func TestCancelBooking_TwiceFails(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	createUC := NewCreateWalkIn(repo, nil)
	cancelUC := NewCancelBooking(repo, nil, "UTC")
	ctx := context.Background()

	ticket, err := createUC.Execute(ctx, CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	_, err = cancelUC.Execute(ctx, ticket.Booking.ID, 10)
	require.NoError(t, err)

	_, err = cancelUC.Execute(ctx, ticket.Booking.ID, 10)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCompleteBooking_StampsCompletion(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, domain.BarberAvailable)

	createUC := NewCreateWalkIn(repo, nil)
	completeUC := NewCompleteBooking(repo, nil, "UTC")
	ctx := context.Background()

	ticket, err := createUC.Execute(ctx, CreateWalkInInput{UserID: 10, BarberID: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	bk, err := completeUC.Execute(ctx, ticket.Booking.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), bk.Status)
	assert.NotNil(t, bk.CompletedAt)

	_, err = completeUC.Execute(ctx, ticket.Booking.ID, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
