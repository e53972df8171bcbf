package residents

import "errors"

var (
	// ErrResidentNotFound возвращается, когда житель не найден
	ErrResidentNotFound = errors.New("resident not found")

	// ErrResidentExists возвращается, когда email, телефон или квартира
	// уже заняты другим жителем
	ErrResidentExists = errors.New("resident already exists")

	// ErrInvalidCredentials возвращается при неверной паре квартира/пароль
	// либо при попытке входа в неактивированный аккаунт
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrActivationTokenInvalid возвращается, когда токен активации
	// не найден или аккаунт уже активирован
	ErrActivationTokenInvalid = errors.New("activation token invalid")

	// ErrActivationTokenExpired возвращается, когда срок токена истек
	ErrActivationTokenExpired = errors.New("activation token expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
