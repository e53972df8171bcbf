package create_resident

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/service/residents/models"
)

type ResidentService interface {
	Create(ctx context.Context, req *models.CreateResidentRequest) (*models.ResidentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
