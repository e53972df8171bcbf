package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	ListByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.TimeSlot, error)
}

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
