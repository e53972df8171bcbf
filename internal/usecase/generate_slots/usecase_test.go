package generate_slots

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/facility"
	slotRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/timeslot"
	"github.com/m04kA/TSZH-FacilityService/pkg/types"
)

// Фейки

type fakeSlotRepo struct {
	slots  map[string]*domain.TimeSlot
	nextID int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*domain.TimeSlot), nextID: 1}
}

func (r *fakeSlotRepo) key(s *domain.TimeSlot) string {
	return s.StartTime.String() + "-" + s.EndTime.String()
}

func (r *fakeSlotRepo) Create(_ context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	if _, ok := r.slots[r.key(slot)]; ok {
		return nil, slotRepo.ErrSlotExists
	}

	stored := *slot
	stored.ID = r.nextID
	stored.Color = domain.SlotColorAvailable
	r.nextID++
	r.slots[r.key(&stored)] = &stored
	return &stored, nil
}

func (r *fakeSlotRepo) ListByFacilityAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.TimeSlot, error) {
	out := make([]*domain.TimeSlot, 0, len(r.slots))
	for _, s := range r.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.IsBefore(out[j].StartTime)
	})
	return out, nil
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

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(slots *fakeSlotRepo) *UseCase {
	facilities := &fakeFacilityRepo{facilities: map[int64]*domain.Facility{
		1: {ID: 1, Name: "Спортзал", IsAvailable: true},
	}}
	return NewUseCase(slots, facilities, &fakeTxManager{}, nopLogger{})
}

func testDate() time.Time {
	return time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
}

// Тесты

func TestExecute_FullOperatingDay(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo())

	resp, err := uc.Execute(context.Background(), &Request{
		FacilityID: 1,
		Date:       testDate(),
		Start:      "07:00",
		End:        "21:00",
	})
	require.NoError(t, err)

	// Рабочий день 07:00-21:00 вмещает ровно 7 двухчасовых слотов
	assert.Equal(t, 7, resp.CreatedCount)
	assert.Equal(t, 0, resp.SkippedCount)
	require.Len(t, resp.Slots, 7)

	assert.Equal(t, types.TimeString("07:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("19:00"), resp.Slots[6].StartTime)
	assert.Equal(t, types.TimeString("21:00"), resp.Slots[6].EndTime)

	for _, slot := range resp.Slots {
		assert.Equal(t, string(domain.SlotStatusAvailable), slot.Status)
		assert.Equal(t, domain.SlotColorAvailable, slot.Color)
	}
}

func TestExecute_SecondRunIsIdempotent(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo())
	req := &Request{FacilityID: 1, Date: testDate(), Start: "07:00", End: "21:00"}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.CreatedCount)
	assert.Equal(t, 7, resp.SkippedCount)
	assert.Len(t, resp.Slots, 7)
}

func TestExecute_FillsGapsAroundExistingSlots(t *testing.T) {
	slots := newFakeSlotRepo()
	_, err := slots.Create(context.Background(), &domain.TimeSlot{
		FacilityID: 1,
		Date:       testDate(),
		StartTime:  "09:00",
		EndTime:    "11:00",
		Status:     domain.SlotStatusAvailable,
	})
	require.NoError(t, err)

	uc := newTestUseCase(slots)

	resp, err := uc.Execute(context.Background(), &Request{
		FacilityID: 1,
		Date:       testDate(),
		Start:      "07:00",
		End:        "13:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.CreatedCount)
	assert.Equal(t, 1, resp.SkippedCount)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_RejectsRangeOutsideOperatingDay(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo())

	cases := []struct {
		name       string
		start, end types.TimeString
	}{
		{"before operating day", "05:00", "09:00"},
		{"after operating day", "19:00", "23:00"},
		{"start equals end", "09:00", "09:00"},
		{"start after end", "11:00", "09:00"},
		{"not a multiple of slot duration", "07:00", "08:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				FacilityID: 1,
				Date:       testDate(),
				Start:      tc.start,
				End:        tc.end,
			})
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo())

	_, err := uc.Execute(context.Background(), &Request{
		FacilityID: 0,
		Date:       testDate(),
		Start:      "07:00",
		End:        "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		FacilityID: 1,
		Start:      "07:00",
		End:        "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo())

	_, err := uc.Execute(context.Background(), &Request{
		FacilityID: 999,
		Date:       testDate(),
		Start:      "07:00",
		End:        "09:00",
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}
