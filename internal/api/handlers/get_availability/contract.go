package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings/models"
)

type BookingService interface {
	GetAvailability(ctx context.Context, facilityID int64, date time.Time) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
