package confirm_booking

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetLiveBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error)
}

// ResidentRepository интерфейс репозитория жителей
type ResidentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resident, error)
}

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, resident *domain.Resident, booking *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
