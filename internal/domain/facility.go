package domain

import "time"

// Facility represents a shared resource of the building (sauna, laundry machine)
// that is booked via time slots
type Facility struct {
	ID          int64
	Name        string
	Description string
	Icon        string

	// IsAvailable флаг мягкого отключения: объект скрывается из выдачи,
	// но физически не удаляется, пока на него ссылаются слоты и бронирования
	IsAvailable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
