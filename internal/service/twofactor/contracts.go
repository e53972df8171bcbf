package twofactor

import (
	"context"
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// CodeRepository интерфейс репозитория 2FA-кодов
type CodeRepository interface {
	Upsert(ctx context.Context, adminID int64, code string, expiresAt time.Time) error
	Get(ctx context.Context, adminID int64) (*domain.TwoFactorCode, error)
	Delete(ctx context.Context, adminID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	SendTwoFactorCode(ctx context.Context, admin *domain.Admin, code string)
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
