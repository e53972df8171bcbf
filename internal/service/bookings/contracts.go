package bookings

import (
	"context"
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetUpcomingByResident(ctx context.Context, residentID int64, fromDate time.Time) ([]*domain.Booking, error)
	ListConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, actor domain.CancelActor, reason string) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.TimeSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// ResidentRepository интерфейс репозитория жителей
type ResidentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resident, error)
}

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	SendCancellationNotification(ctx context.Context, resident *domain.Resident, booking *domain.Booking, reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
