package twofactor

import "errors"

var (
	// ErrCodeInvalid возвращается, когда код не совпадает или не выдавался
	ErrCodeInvalid = errors.New("two-factor code invalid")

	// ErrCodeExpired возвращается, когда срок действия кода истек
	ErrCodeExpired = errors.New("two-factor code expired")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
