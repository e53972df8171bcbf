package verify_two_factor

import (
	"context"

	"github.com/m04kA/TSZH-FacilityService/internal/service/admins/models"
)

type AdminService interface {
	VerifyCode(ctx context.Context, req *models.VerifyCodeRequest) (*models.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
