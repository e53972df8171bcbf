package setup_two_factor

import "context"

type AdminService interface {
	SetupTwoFactor(ctx context.Context, adminID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
