package list_residents

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/service/residents/models"
)

type ResidentService interface {
	List(ctx context.Context) (*models.ResidentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
