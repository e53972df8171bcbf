package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// либо житель пытается работать с чужим бронированием
	ErrBookingNotFound = errors.New("booking not found")

	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrCannotCancel возвращается, когда бронирование уже отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancellationWindowExpired возвращается, когда до начала слота
	// осталось меньше 24 часов
	ErrCancellationWindowExpired = errors.New("cancellation window expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
