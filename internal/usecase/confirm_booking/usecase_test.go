package confirm_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/facility"
	residentRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/resident"
	slotRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/timeslot"
)

// Фейки. Хранилища защищены мьютексом, чтобы тест на конкурентное
// бронирование был честным.

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[int64]*domain.TimeSlot
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (r *fakeSlotRepo) UpdateStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	slot.Status = status
	return nil
}

type fakeBookingRepo struct {
	mu         sync.Mutex
	nextID     int64
	bookings   []*domain.Booking
	liveBySlot map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, liveBySlot: make(map[int64]*domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Аналог частичного уникального индекса по живым бронированиям
	if _, ok := r.liveBySlot[b.TimeSlotID]; ok {
		return nil, bookingRepo.ErrSlotAlreadyBooked
	}

	stored := *b
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.nextID++
	r.bookings = append(r.bookings, &stored)
	r.liveBySlot[stored.TimeSlotID] = &stored
	return &stored, nil
}

func (r *fakeBookingRepo) GetLiveBySlotID(_ context.Context, slotID int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.liveBySlot[slotID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
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

type fakeNotifier struct {
	mu            sync.Mutex
	confirmations int
}

func (n *fakeNotifier) SendBookingConfirmation(context.Context, *domain.Resident, *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations++
}

// fakeTxManager сериализует транзакции глобальным мьютексом -
// модель сериализуемой изоляции с блокировкой строки слота
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	slots    *fakeSlotRepo
	bookings *fakeBookingRepo
	notifier *fakeNotifier
	uc       *UseCase
}

func newFixture() *fixture {
	slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{
		10: {
			ID:         10,
			FacilityID: 1,
			Date:       time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:  "09:00",
			EndTime:    "11:00",
			Status:     domain.SlotStatusAvailable,
		},
	}}
	bookings := newFakeBookingRepo()
	residents := &fakeResidentRepo{residents: map[int64]*domain.Resident{
		5: {ID: 5, Name: "Иван Петров", Email: "ivan@example.com", ApartmentNumber: "12", IsActive: true},
		6: {ID: 6, Name: "Не активирован", Email: "inactive@example.com", ApartmentNumber: "13", IsActive: false},
	}}
	facilities := &fakeFacilityRepo{facilities: map[int64]*domain.Facility{
		1: {ID: 1, Name: "Сауна", IsAvailable: true},
	}}
	notifier := &fakeNotifier{}

	uc := NewUseCase(slots, bookings, residents, facilities, notifier, &fakeTxManager{}, nopLogger{})
	return &fixture{slots: slots, bookings: bookings, notifier: notifier, uc: uc}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ResidentID: 5, TimeSlotID: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ResidentID)
	assert.Equal(t, int64(10), resp.TimeSlotID)
	assert.Equal(t, int64(1), resp.FacilityID)
	assert.Equal(t, "Сауна", resp.FacilityName)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Слот занят в той же операции
	slot, err := f.slots.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, slot.Status)

	assert.Equal(t, 1, f.notifier.confirmations)
}

func TestExecute_SlotNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ResidentID: 5, TimeSlotID: 404})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SlotAlreadyBooked(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ResidentID: 5, TimeSlotID: 10})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{ResidentID: 5, TimeSlotID: 10})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Бронирование осталось ровно одно
	assert.Len(t, f.bookings.bookings, 1)
	assert.Equal(t, 1, f.notifier.confirmations)
}

func TestExecute_FacilityMismatch(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ResidentID: 5, TimeSlotID: 10, FacilityID: 2})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_LiveBookingBlocksSlot(t *testing.T) {
	f := newFixture()

	// Слот числится свободным, но живое бронирование уже есть -
	// рассинхронизация не должна приводить к двойной брони
	_, err := f.bookings.Create(context.Background(), &domain.Booking{
		ResidentID: 7,
		TimeSlotID: 10,
		Status:     domain.StatusConfirmed,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{ResidentID: 5, TimeSlotID: 10})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ResidentChecks(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ResidentID: 404, TimeSlotID: 10})
	assert.ErrorIs(t, err, ErrResidentNotFound)

	// Неактивированный аккаунт бронировать не может
	_, err = f.uc.Execute(context.Background(), &Request{ResidentID: 6, TimeSlotID: 10})
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ResidentID: 0, TimeSlotID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{ResidentID: 5, TimeSlotID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentRequestsExactlyOneWins(t *testing.T) {
	f := newFixture()

	const attempts = 20

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), &Request{ResidentID: 5, TimeSlotID: 10})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Len(t, f.bookings.bookings, 1)

	slot, err := f.slots.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, slot.Status)
}
