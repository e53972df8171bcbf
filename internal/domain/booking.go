package domain

import (
	"time"

	"github.com/m04kA/TSZH-FacilityService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// CancelActor кто отменил бронирование
type CancelActor string

const (
	CancelledByResident CancelActor = "resident"
	CancelledByAdmin    CancelActor = "admin"
)

// Booking represents a resident's confirmed claim on exactly one time slot
type Booking struct {
	ID         int64
	ResidentID int64
	FacilityID int64
	TimeSlotID int64

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	// Denormalized data for history
	FacilityName string

	CancelledBy        *CancelActor
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive returns true if the booking still claims its slot
func (b *Booking) IsLive() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// StartsAt возвращает момент начала забронированного слота
func (b *Booking) StartsAt() time.Time {
	return b.StartTime.OnDate(b.BookingDate)
}

// CanBeCancelledBy проверяет политику отмены для жителя:
// отмена разрешена, пока до начала слота остаётся не меньше
// CancellationNoticeHours. Для администратора ограничения нет.
func (b *Booking) CanBeCancelledBy(actor CancelActor, now time.Time) bool {
	if !b.IsLive() {
		return false
	}
	if actor == CancelledByAdmin {
		return true
	}
	return b.StartsAt().Sub(now) >= CancellationNoticeHours*time.Hour
}
