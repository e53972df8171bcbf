package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	"github.com/m04kA/TSZH-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/TSZH-FacilityService/pkg/psqlbuilder"
)

var facilityColumns = []string{
	"id",
	"name",
	"description",
	"icon",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с объектами общего пользования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый объект
func (r *Repository) Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facilities").
		Columns("name", "description", "icon", "is_available").
		Values(f.Name, f.Description, f.Icon, f.IsAvailable).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return f, nil
}

// GetByID получает объект по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanFacility(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	return f, nil
}

// ListAvailable получает все доступные объекты, отсортированные по имени.
// Мягко отключенные объекты в выдачу не попадают.
func (r *Repository) ListAvailable(ctx context.Context) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		Where(squirrel.Eq{"is_available": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	facilities := make([]*domain.Facility, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan row: %v", ErrScanRow, err)
		}
		facilities = append(facilities, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}

// SetAvailability включает/выключает объект (мягкое отключение,
// физическое удаление не поддерживается)
func (r *Repository) SetAvailability(ctx context.Context, id int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
		Set("is_available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrFacilityNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	var f domain.Facility
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.Icon,
		&f.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}
