package admins

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверной паре логин/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCodeInvalid возвращается при неверном 2FA-коде
	ErrCodeInvalid = errors.New("two-factor code invalid")

	// ErrCodeExpired возвращается при истекшем 2FA-коде
	ErrCodeExpired = errors.New("two-factor code expired")

	// ErrAdminNotFound возвращается, когда администратор не найден
	ErrAdminNotFound = errors.New("admin not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
