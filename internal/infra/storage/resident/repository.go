package resident

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	"github.com/m04kA/TSZH-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/TSZH-FacilityService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

var residentColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"apartment_number",
	"password_hash",
	"is_active",
	"activation_token",
	"activation_token_expiry",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository репозиторий для работы с жителями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория жителей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового жителя. Дубликат email / телефона / квартиры
// отклоняется уникальными индексами и возвращается как ErrResidentExists.
func (r *Repository) Create(ctx context.Context, res *domain.Resident) (*domain.Resident, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("residents").
		Columns(
			"name",
			"email",
			"phone",
			"apartment_number",
			"password_hash",
			"is_active",
			"activation_token",
			"activation_token_expiry",
		).
		Values(
			res.Name,
			res.Email,
			res.Phone,
			res.ApartmentNumber,
			res.PasswordHash,
			res.IsActive,
			res.ActivationToken,
			res.ActivationTokenExpiry,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrResidentExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает жителя по ID (мягко удаленные не возвращаются)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resident, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByApartment получает жителя по номеру квартиры
func (r *Repository) GetByApartment(ctx context.Context, apartmentNumber string) (*domain.Resident, error) {
	return r.getOne(ctx, squirrel.Eq{"apartment_number": apartmentNumber})
}

// GetByActivationToken получает жителя по токену активации
func (r *Repository) GetByActivationToken(ctx context.Context, token string) (*domain.Resident, error) {
	return r.getOne(ctx, squirrel.Eq{"activation_token": token})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Resident, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(residentColumns...).
		From("residents").
		Where(where).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanResident(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrResidentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan resident: %v", ErrScanRow, err)
	}

	return res, nil
}

// List получает всех не удаленных жителей, отсортированных по квартире
func (r *Repository) List(ctx context.Context) ([]*domain.Resident, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(residentColumns...).
		From("residents").
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("apartment_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	residents := make([]*domain.Resident, 0)
	for rows.Next() {
		res, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		residents = append(residents, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return residents, nil
}

// Update обновляет контактные данные жителя
func (r *Repository) Update(ctx context.Context, res *domain.Resident) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("residents").
		Set("name", res.Name).
		Set("email", res.Email).
		Set("phone", res.Phone).
		Set("apartment_number", res.ApartmentNumber).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID, "deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrResidentExists
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// Activate активирует аккаунт: ставит хеш пароля, снимает токен активации
func (r *Repository) Activate(ctx context.Context, id int64, passwordHash string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("residents").
		Set("is_active", true).
		Set("password_hash", passwordHash).
		Set("activation_token", nil).
		Set("activation_token_expiry", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Activate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Activate - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Activate")
}

// SoftDelete мягко удаляет жителя (история бронирований сохраняется)
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("residents").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SoftDelete")
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrResidentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResident(row rowScanner) (*domain.Resident, error) {
	var res domain.Resident
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.Name,
		&res.Email,
		&res.Phone,
		&res.ApartmentNumber,
		&res.PasswordHash,
		&res.IsActive,
		&res.ActivationToken,
		&res.ActivationTokenExpiry,
		&createdAt,
		&updatedAt,
		&res.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
