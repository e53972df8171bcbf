package admin_cancel_booking

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings/models"
)

type BookingService interface {
	CancelByAdmin(ctx context.Context, req *models.CancelByAdminRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
