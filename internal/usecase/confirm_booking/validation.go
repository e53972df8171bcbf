package confirm_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResidentID <= 0 {
		return fmt.Errorf("%w: residentID must be positive", ErrInvalidInput)
	}

	if req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: timeSlotID must be positive", ErrInvalidInput)
	}

	if req.FacilityID < 0 {
		return fmt.Errorf("%w: facilityID must not be negative", ErrInvalidInput)
	}

	return nil
}
