package twofactor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	"github.com/m04kA/TSZH-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/TSZH-FacilityService/pkg/psqlbuilder"
)

// Repository репозиторий одноразовых 2FA-кодов администраторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория 2FA-кодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет код для администратора. Повторная выдача кода
// перезаписывает предыдущий, актуальным остается только последний.
func (r *Repository) Upsert(ctx context.Context, adminID int64, code string, expiresAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("two_factor_codes").
		Columns("admin_id", "code", "expires_at").
		Values(adminID, code, expiresAt).
		Suffix("ON CONFLICT (admin_id) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, created_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Get получает актуальный код администратора
func (r *Repository) Get(ctx context.Context, adminID int64) (*domain.TwoFactorCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("admin_id", "code", "expires_at", "created_at").
		From("two_factor_codes").
		Where(squirrel.Eq{"admin_id": adminID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.TwoFactorCode
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.AdminID, &c.Code, &c.ExpiresAt, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan code: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time

	return &c, nil
}

// Delete удаляет код администратора (код одноразовый, после успешной
// проверки запись снимается)
func (r *Repository) Delete(ctx context.Context, adminID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("two_factor_codes").
		Where(squirrel.Eq{"admin_id": adminID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет все истекшие коды, возвращает число удаленных
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("two_factor_codes").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
