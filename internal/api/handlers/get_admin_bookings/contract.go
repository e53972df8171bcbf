package get_admin_bookings

import (
	"context"
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings/models"
)

type BookingService interface {
	ListByDate(ctx context.Context, date time.Time) (*models.AdminBookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
