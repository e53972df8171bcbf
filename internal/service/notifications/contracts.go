package notifications

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// MailClient интерфейс клиента почтового шлюза
type MailClient interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EmailLogRepository интерфейс репозитория журнала аудита писем
type EmailLogRepository interface {
	Create(ctx context.Context, log *domain.EmailAuditLog) (*domain.EmailAuditLog, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
