package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	"github.com/m04kA/TSZH-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/TSZH-FacilityService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

var slotColumns = []string{
	"id",
	"facility_id",
	"slot_date",
	"start_time",
	"end_time",
	"status",
	"color",
	"created_at",
}

// Repository репозиторий для работы с временными слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот. Статус и цвет пишутся согласованно:
// цвет всегда выводится из статуса, отдельно он не задается.
// Дубликат (facility_id, slot_date, start_time, end_time) отклоняется
// уникальным индексом и возвращается как ErrSlotExists.
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns(
			"facility_id",
			"slot_date",
			"start_time",
			"end_time",
			"status",
			"color",
		).
		Values(
			slot.FacilityID,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.Status,
			domain.ColorForStatus(slot.Status),
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.Color = domain.ColorForStatus(slot.Status)
	slot.CreatedAt = createdAt.Time

	return slot, nil
}

// GetByID получает слот по ID.
// Внутри транзакции строка блокируется FOR UPDATE - так конкурирующие
// попытки бронирования одного слота сериализуются на уровне БД.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// ListByFacilityAndDate получает все слоты объекта на дату,
// отсортированные по времени начала
func (r *Repository) ListByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"facility_id": facilityID, "slot_date": date}).
		OrderBy("start_time ASC")

	// В транзакции (генерация слотов) блокируем существующие строки,
	// чтобы параллельная генерация не создала дубликаты
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFacilityAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFacilityAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// UpdateStatus обновляет статус слота; цвет выводится из нового статуса
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("status", status).
		Set("color", domain.ColorForStatus(status)).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var createdAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.FacilityID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.Color,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	return &slot, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
