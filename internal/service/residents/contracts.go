package residents

import (
	"context"
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// ResidentRepository интерфейс репозитория жителей
type ResidentRepository interface {
	Create(ctx context.Context, resident *domain.Resident) (*domain.Resident, error)
	GetByID(ctx context.Context, id int64) (*domain.Resident, error)
	GetByApartment(ctx context.Context, apartmentNumber string) (*domain.Resident, error)
	GetByActivationToken(ctx context.Context, token string) (*domain.Resident, error)
	List(ctx context.Context) ([]*domain.Resident, error)
	Update(ctx context.Context, resident *domain.Resident) error
	Activate(ctx context.Context, id int64, passwordHash string) error
	SoftDelete(ctx context.Context, id int64) error
}

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	SendActivationEmail(ctx context.Context, resident *domain.Resident, token string)
}

// TokenIssuer интерфейс выпуска JWT-токенов
type TokenIssuer interface {
	IssueToken(userID int64, role string) (string, error)
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
