package domain

import (
	"time"

	"github.com/m04kA/TSZH-FacilityService/pkg/types"
)

// SlotStatus represents the status of a time slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
)

// Цвет слота — денормализованное представление статуса для UI.
// Никогда не выставляется снаружи, всегда выводится из статуса.
const (
	SlotColorAvailable = "green"
	SlotColorBooked    = "red"
)

// TimeSlot represents a fixed-duration bookable window for a facility on a date
type TimeSlot struct {
	ID         int64
	FacilityID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     SlotStatus
	Color      string

	CreatedAt time.Time
}

// IsAvailable returns true if the slot can still be booked
func (s *TimeSlot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// StartsAt возвращает момент начала слота (дата + время начала)
func (s *TimeSlot) StartsAt() time.Time {
	return s.StartTime.OnDate(s.Date)
}

// ColorForStatus возвращает цвет, соответствующий статусу слота
func ColorForStatus(status SlotStatus) string {
	if status == SlotStatusBooked {
		return SlotColorBooked
	}
	return SlotColorAvailable
}
