package generate_slots

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("generate_slots: facility not found")

	// ErrInvalidRange возвращается, когда границы генерации выходят за
	// рабочий день, перепутаны местами или не кратны длине слота
	ErrInvalidRange = errors.New("generate_slots: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
