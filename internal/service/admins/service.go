package admins

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	adminRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/admin"
	"github.com/m04kA/TSZH-FacilityService/internal/service/admins/models"
	twofactorSvc "github.com/m04kA/TSZH-FacilityService/internal/service/twofactor"
	"github.com/m04kA/TSZH-FacilityService/pkg/auth"
)

// Service сервис аутентификации администраторов
type Service struct {
	adminRepo   AdminRepository
	twoFactor   TwoFactorService
	tokenIssuer TokenIssuer
	logger      Logger
}

// NewService создает новый экземпляр сервиса администраторов
func NewService(
	adminRepo AdminRepository,
	twoFactor TwoFactorService,
	tokenIssuer TokenIssuer,
	logger Logger,
) *Service {
	return &Service{
		adminRepo:   adminRepo,
		twoFactor:   twoFactor,
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

// Login аутентифицирует администратора по логину и паролю.
// При включенной 2FA токен не выдается - администратору отправляется
// одноразовый код, вход завершается через VerifyCode.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.logger.Info("Login: admin login attempt for username=%s", req.Username)

	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("Login: admin not found for username=%s", req.Username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for username=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	if admin.TwoFactorEnabled {
		if err := s.twoFactor.Issue(ctx, admin); err != nil {
			s.logger.Error("Login: failed to issue 2FA code for admin id=%d: %v", admin.ID, err)
			return nil, fmt.Errorf("%w: Login - failed to issue 2FA code: %v", ErrInternal, err)
		}

		s.logger.Info("Login: 2FA code required for admin id=%d", admin.ID)
		return &models.LoginResponse{
			TwoFactorRequired: true,
			AdminID:           admin.ID,
		}, nil
	}

	token, err := s.tokenIssuer.IssueToken(admin.ID, auth.RoleAdmin)
	if err != nil {
		s.logger.Error("Login: failed to issue token for admin id=%d: %v", admin.ID, err)
		return nil, fmt.Errorf("%w: Login - failed to issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin id=%d logged in", admin.ID)
	return &models.LoginResponse{Token: token}, nil
}

// VerifyCode завершает вход администратора с 2FA: проверяет одноразовый
// код и выдает токен
func (s *Service) VerifyCode(ctx context.Context, req *models.VerifyCodeRequest) (*models.LoginResponse, error) {
	s.logger.Info("VerifyCode: verifying 2FA code for admin id=%d", req.AdminID)

	if err := s.twoFactor.Verify(ctx, req.AdminID, req.Code); err != nil {
		switch {
		case errors.Is(err, twofactorSvc.ErrCodeExpired):
			return nil, ErrCodeExpired
		case errors.Is(err, twofactorSvc.ErrCodeInvalid):
			return nil, ErrCodeInvalid
		default:
			s.logger.Error("VerifyCode: verification error for admin id=%d: %v", req.AdminID, err)
			return nil, fmt.Errorf("%w: VerifyCode - verification error: %v", ErrInternal, err)
		}
	}

	token, err := s.tokenIssuer.IssueToken(req.AdminID, auth.RoleAdmin)
	if err != nil {
		s.logger.Error("VerifyCode: failed to issue token for admin id=%d: %v", req.AdminID, err)
		return nil, fmt.Errorf("%w: VerifyCode - failed to issue token: %v", ErrInternal, err)
	}

	s.logger.Info("VerifyCode: admin id=%d logged in with 2FA", req.AdminID)
	return &models.LoginResponse{Token: token}, nil
}

// SetupTwoFactor включает двухфакторную аутентификацию администратору
func (s *Service) SetupTwoFactor(ctx context.Context, adminID int64) error {
	s.logger.Info("SetupTwoFactor: enabling 2FA for admin id=%d", adminID)

	if err := s.adminRepo.SetTwoFactorEnabled(ctx, adminID, true); err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("SetupTwoFactor: admin id=%d not found", adminID)
			return ErrAdminNotFound
		}
		s.logger.Error("SetupTwoFactor: repository error for admin id=%d: %v", adminID, err)
		return fmt.Errorf("%w: SetupTwoFactor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetupTwoFactor: 2FA enabled for admin id=%d", adminID)
	return nil
}
