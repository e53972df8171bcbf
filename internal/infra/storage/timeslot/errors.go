package timeslot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("timeslot.repository: slot not found")

	// ErrSlotExists возвращается при попытке создать дубликат слота
	// (нарушение уникальности facility_id + slot_date + start_time + end_time)
	ErrSlotExists = errors.New("timeslot.repository: slot already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeslot.repository: failed to scan row")
)
