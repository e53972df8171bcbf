package confirm_booking

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда слот не существует, уже
	// занят или его только что забронировал другой житель.
	// Проигрыш в гонке для клиента неотличим от занятого слота.
	ErrSlotNotAvailable = errors.New("confirm_booking: slot is not available")

	// ErrResidentNotFound возвращается, когда житель не найден
	// или его аккаунт не активирован
	ErrResidentNotFound = errors.New("confirm_booking: resident not found")

	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("confirm_booking: facility not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
