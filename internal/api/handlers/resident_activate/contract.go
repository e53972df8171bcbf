package resident_activate

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/service/residents/models"
)

type ResidentService interface {
	Activate(ctx context.Context, req *models.ActivateRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
