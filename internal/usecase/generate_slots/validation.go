package generate_slots

import (
	"fmt"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if err := req.Start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start format: %v", ErrInvalidInput, err)
	}

	if err := req.End.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateRange проверяет границы генерации: внутри рабочего дня,
// начало раньше конца, длина диапазона кратна длине слота.
// Нарушение любого условия не создает ни одного слота.
func validateRange(req *Request) error {
	if req.Start.IsBefore(domain.OperatingDayStart) {
		return fmt.Errorf("%w: start before operating day start (%s)", ErrInvalidRange, domain.OperatingDayStart)
	}

	if req.End.IsAfter(domain.OperatingDayEnd) {
		return fmt.Errorf("%w: end after operating day end (%s)", ErrInvalidRange, domain.OperatingDayEnd)
	}

	if !req.Start.IsBefore(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidRange)
	}

	startMinutes, err := req.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	endMinutes, err := req.End.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	if (endMinutes-startMinutes)%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: range must be a multiple of %d minutes", ErrInvalidRange, domain.SlotDurationMinutes)
	}

	return nil
}
