package resident

import "errors"

var (
	// ErrResidentNotFound возвращается, когда житель не найден
	ErrResidentNotFound = errors.New("resident.repository: resident not found")

	// ErrResidentExists возвращается при нарушении уникальности
	// email / телефона / номера квартиры
	ErrResidentExists = errors.New("resident.repository: resident already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("resident.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("resident.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("resident.repository: failed to scan row")
)
