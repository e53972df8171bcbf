package admin

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	"github.com/m04kA/TSZH-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/TSZH-FacilityService/pkg/psqlbuilder"
)

var adminColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"two_factor_enabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с администраторами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория администраторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает администратора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByUsername получает администратора по имени пользователя
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username}, "GetByUsername")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(adminColumns...).
		From("admins").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	a, err := scanAdmin(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan admin: %v", ErrScanRow, op, err)
	}

	return a, nil
}

// SetTwoFactorEnabled включает/выключает двухфакторную аутентификацию
func (r *Repository) SetTwoFactorEnabled(ctx context.Context, id int64, enabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("admins").
		Set("two_factor_enabled", enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetTwoFactorEnabled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetTwoFactorEnabled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetTwoFactorEnabled - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAdmin(row rowScanner) (*domain.Admin, error) {
	var a domain.Admin
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.TwoFactorEnabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
