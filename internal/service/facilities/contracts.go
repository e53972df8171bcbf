package facilities

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	ListAvailable(ctx context.Context) ([]*domain.Facility, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
