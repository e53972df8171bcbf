package cancel_booking

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings/models"
)

type BookingService interface {
	CancelByResident(ctx context.Context, req *models.CancelByResidentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
