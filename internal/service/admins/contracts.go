package admins

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// AdminRepository интерфейс репозитория администраторов
type AdminRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	SetTwoFactorEnabled(ctx context.Context, id int64, enabled bool) error
}

// TwoFactorService интерфейс сервиса одноразовых кодов
type TwoFactorService interface {
	Issue(ctx context.Context, admin *domain.Admin) error
	Verify(ctx context.Context, adminID int64, code string) error
}

// TokenIssuer интерфейс выпуска JWT-токенов
type TokenIssuer interface {
	IssueToken(userID int64, role string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
