package set_facility_availability

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/service/facilities/models"
)

type FacilityService interface {
	SetAvailability(ctx context.Context, req *models.SetAvailabilityRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
