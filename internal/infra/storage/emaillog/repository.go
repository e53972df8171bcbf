package emaillog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	"github.com/m04kA/TSZH-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/TSZH-FacilityService/pkg/psqlbuilder"
)

// Repository репозиторий журнала аудита исходящих писем
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала писем
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create фиксирует попытку отправки письма в журнале аудита
func (r *Repository) Create(ctx context.Context, log *domain.EmailAuditLog) (*domain.EmailAuditLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("email_audit_logs").
		Columns("recipient_email", "subject", "email_type", "status").
		Values(log.RecipientEmail, log.Subject, log.EmailType, log.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&log.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	log.CreatedAt = createdAt.Time

	return log, nil
}
