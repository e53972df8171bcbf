package twofactor

import "errors"

var (
	// ErrCodeNotFound возвращается, когда код для администратора не найден
	ErrCodeNotFound = errors.New("twofactor.repository: code not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("twofactor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("twofactor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("twofactor.repository: failed to scan row")
)
