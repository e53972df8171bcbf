package mailservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mailservice client: invalid response")

	// ErrSendFailed возвращается, когда почтовый шлюз отказал в отправке
	ErrSendFailed = errors.New("mailservice client: send failed")
)
