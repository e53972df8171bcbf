package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/facility"
	residentRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/resident"
	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings/models"
	"github.com/m04kA/TSZH-FacilityService/pkg/ptr"
	"github.com/m04kA/TSZH-FacilityService/pkg/types"
)

// Фейки

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetUpcomingByResident(_ context.Context, residentID int64, fromDate time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.ResidentID == residentID && b.IsLive() && !b.BookingDate.Before(fromDate) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListConfirmedByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.IsLive() && b.BookingDate.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, actor domain.CancelActor, reason string) error {
	b, ok := r.bookings[id]
	if !ok || !b.IsLive() {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancelledBy = &actor
	b.CancellationReason = &reason
	b.CancelledAt = ptr.Ptr(time.Now())
	return nil
}

type fakeSlotRepo struct {
	statuses map[int64]domain.SlotStatus
}

func (r *fakeSlotRepo) ListByFacilityAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.TimeSlot, error) {
	return nil, nil
}

func (r *fakeSlotRepo) UpdateStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	r.statuses[id] = status
	return nil
}

type fakeFacilityRepo struct {
	facilities map[int64]*domain.Facility
}

func (r *fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	f, ok := r.facilities[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return f, nil
}

type fakeResidentRepo struct {
	residents map[int64]*domain.Resident
}

func (r *fakeResidentRepo) GetByID(_ context.Context, id int64) (*domain.Resident, error) {
	res, ok := r.residents[id]
	if !ok {
		return nil, residentRepo.ErrResidentNotFound
	}
	return res, nil
}

type fakeNotifier struct {
	cancellations int
	lastReason    string
}

func (n *fakeNotifier) SendCancellationNotification(_ context.Context, _ *domain.Resident, _ *domain.Booking, reason string) {
	n.cancellations++
	n.lastReason = reason
}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фикстура: "сейчас" - 2025-10-15 12:00 UTC

type fixture struct {
	bookings  *fakeBookingRepo
	slots     *fakeSlotRepo
	residents *fakeResidentRepo
	notifier  *fakeNotifier
	clock     *fakeClock
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)},
		slots:     &fakeSlotRepo{statuses: make(map[int64]domain.SlotStatus)},
		residents: &fakeResidentRepo{residents: map[int64]*domain.Resident{
			5: {ID: 5, Name: "Иван Петров", Email: "ivan@example.com", Phone: "+70000000001", ApartmentNumber: "12", IsActive: true},
		}},
		notifier: &fakeNotifier{},
		clock:    &fakeClock{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)},
	}

	facilities := &fakeFacilityRepo{facilities: map[int64]*domain.Facility{
		1: {ID: 1, Name: "Спортзал", IsAvailable: true},
	}}

	f.svc = NewService(f.bookings, f.slots, facilities, f.residents, f.notifier, &fakeTxManager{}, nopLogger{})
	f.svc.timeProvider = f.clock
	return f
}

// addBooking кладет живое бронирование жителя 5 на слот 10, начинающееся в start
func (f *fixture) addBooking(id int64, start time.Time) {
	f.bookings.bookings[id] = &domain.Booking{
		ID:           id,
		ResidentID:   5,
		FacilityID:   1,
		TimeSlotID:   10,
		BookingDate:  time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:    types.NewTimeString(start),
		EndTime:      types.NewTimeString(start.Add(2 * time.Hour)),
		Status:       domain.StatusConfirmed,
		FacilityName: "Спортзал",
	}
	f.slots.statuses[10] = domain.SlotStatusBooked
}

// Тесты

func TestCancelByResident_Success(t *testing.T) {
	f := newFixture()
	f.addBooking(1, f.clock.now.Add(26*time.Hour))

	err := f.svc.CancelByResident(context.Background(), &models.CancelByResidentRequest{
		BookingID:          1,
		ResidentID:         5,
		CancellationReason: "планы изменились",
	})
	require.NoError(t, err)

	booking := f.bookings.bookings[1]
	assert.True(t, booking.IsCancelled())
	require.NotNil(t, booking.CancelledBy)
	assert.Equal(t, domain.CancelledByResident, *booking.CancelledBy)

	// Слот вернулся в available, письмо отправлено
	assert.Equal(t, domain.SlotStatusAvailable, f.slots.statuses[10])
	assert.Equal(t, 1, f.notifier.cancellations)
	assert.Equal(t, "планы изменились", f.notifier.lastReason)
}

func TestCancelByResident_WindowExpired(t *testing.T) {
	f := newFixture()
	f.addBooking(1, f.clock.now.Add(23*time.Hour))

	err := f.svc.CancelByResident(context.Background(), &models.CancelByResidentRequest{
		BookingID:  1,
		ResidentID: 5,
	})
	assert.ErrorIs(t, err, ErrCancellationWindowExpired)

	// Бронирование не тронуто
	assert.True(t, f.bookings.bookings[1].IsLive())
	assert.Equal(t, domain.SlotStatusBooked, f.slots.statuses[10])
	assert.Equal(t, 0, f.notifier.cancellations)
}

func TestCancelByResident_ExactlyAtWindowBoundary(t *testing.T) {
	f := newFixture()
	// Ровно 24 часа до начала - отмена еще разрешена
	f.addBooking(1, f.clock.now.Add(24*time.Hour))

	err := f.svc.CancelByResident(context.Background(), &models.CancelByResidentRequest{
		BookingID:  1,
		ResidentID: 5,
	})
	require.NoError(t, err)
	assert.True(t, f.bookings.bookings[1].IsCancelled())
}

func TestCancelByResident_ForeignBookingLooksMissing(t *testing.T) {
	f := newFixture()
	f.addBooking(1, f.clock.now.Add(48*time.Hour))

	err := f.svc.CancelByResident(context.Background(), &models.CancelByResidentRequest{
		BookingID:  1,
		ResidentID: 99,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.True(t, f.bookings.bookings[1].IsLive())
}

func TestCancelByResident_AlreadyCancelled(t *testing.T) {
	f := newFixture()
	f.addBooking(1, f.clock.now.Add(48*time.Hour))
	f.bookings.bookings[1].Status = domain.StatusCancelled

	err := f.svc.CancelByResident(context.Background(), &models.CancelByResidentRequest{
		BookingID:  1,
		ResidentID: 5,
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelByAdmin_IgnoresWindow(t *testing.T) {
	f := newFixture()
	// Слот начинается через час - жителю уже нельзя, администратору можно
	f.addBooking(1, f.clock.now.Add(time.Hour))

	err := f.svc.CancelByAdmin(context.Background(), &models.CancelByAdminRequest{
		BookingID:          1,
		CancellationReason: "техническое обслуживание",
	})
	require.NoError(t, err)

	booking := f.bookings.bookings[1]
	assert.True(t, booking.IsCancelled())
	require.NotNil(t, booking.CancelledBy)
	assert.Equal(t, domain.CancelledByAdmin, *booking.CancelledBy)
	assert.Equal(t, domain.SlotStatusAvailable, f.slots.statuses[10])
	assert.Equal(t, "техническое обслуживание", f.notifier.lastReason)
}

func TestCancelByAdmin_ReasonRequired(t *testing.T) {
	f := newFixture()
	f.addBooking(1, f.clock.now.Add(48*time.Hour))

	err := f.svc.CancelByAdmin(context.Background(), &models.CancelByAdminRequest{BookingID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, f.bookings.bookings[1].IsLive())
}

func TestCancel_ReasonTooLong(t *testing.T) {
	f := newFixture()
	f.addBooking(1, f.clock.now.Add(48*time.Hour))

	longReason := strings.Repeat("а", domain.MaxCancellationReasonLength+1)

	err := f.svc.CancelByResident(context.Background(), &models.CancelByResidentRequest{
		BookingID:          1,
		ResidentID:         5,
		CancellationReason: longReason,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancelByResident_NotifyFailureDoesNotUndoCancel(t *testing.T) {
	f := newFixture()
	f.addBooking(1, f.clock.now.Add(48*time.Hour))

	// Житель исчез между отменой и отправкой письма
	delete(f.residents.residents, 5)

	err := f.svc.CancelByResident(context.Background(), &models.CancelByResidentRequest{
		BookingID:  1,
		ResidentID: 5,
	})
	require.NoError(t, err)
	assert.True(t, f.bookings.bookings[1].IsCancelled())
	assert.Equal(t, 0, f.notifier.cancellations)
}

func TestGetByID_ForeignBookingLooksMissing(t *testing.T) {
	f := newFixture()
	f.addBooking(1, f.clock.now.Add(48*time.Hour))

	resp, err := f.svc.GetByID(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = f.svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetAvailability_FacilityNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetAvailability(context.Background(), 404, f.clock.now)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestListByDate_ToleratesDeletedResident(t *testing.T) {
	f := newFixture()
	date := time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)
	f.addBooking(1, date.Add(10*time.Hour))

	delete(f.residents.residents, 5)

	resp, err := f.svc.ListByDate(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	// Сводка без контактов, но бронирование в ней есть
	assert.Empty(t, resp.Bookings[0].ResidentName)
	assert.Equal(t, int64(5), resp.Bookings[0].ResidentID)
}
