package residents

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	residentRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/resident"
	"github.com/m04kA/TSZH-FacilityService/internal/service/residents/models"
	"github.com/m04kA/TSZH-FacilityService/pkg/auth"
	"github.com/m04kA/TSZH-FacilityService/pkg/ptr"
)

// Service сервис каталога жителей: регистрация администратором,
// активация аккаунта по токену, вход, обновление и мягкое удаление
type Service struct {
	residentRepo ResidentRepository
	notifier     NotificationService
	tokenIssuer  TokenIssuer
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса жителей
func NewService(
	residentRepo ResidentRepository,
	notifier NotificationService,
	tokenIssuer TokenIssuer,
	logger Logger,
) *Service {
	return &Service{
		residentRepo: residentRepo,
		notifier:     notifier,
		tokenIssuer:  tokenIssuer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create регистрирует нового жителя. Аккаунт создается неактивным,
// жителю отправляется письмо с токеном активации (срок - 24 часа).
func (s *Service) Create(ctx context.Context, req *models.CreateResidentRequest) (*models.ResidentResponse, error) {
	s.logger.Info("Create: registering resident apartment=%s, email=%s", req.ApartmentNumber, req.Email)

	if err := validateContacts(req.Name, req.Email, req.Phone, req.ApartmentNumber); err != nil {
		s.logger.Warn("Create: validation failed for apartment=%s: %v", req.ApartmentNumber, err)
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		s.logger.Error("Create: failed to generate activation token: %v", err)
		return nil, fmt.Errorf("%w: Create - failed to generate token: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resident := &domain.Resident{
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 req.Phone,
		ApartmentNumber:       req.ApartmentNumber,
		IsActive:              false,
		ActivationToken:       &token,
		ActivationTokenExpiry: ptr.Ptr(now.Add(domain.ActivationTokenTTLHours * time.Hour)),
	}

	created, err := s.residentRepo.Create(ctx, resident)
	if err != nil {
		if errors.Is(err, residentRepo.ErrResidentExists) {
			s.logger.Warn("Create: resident already exists for apartment=%s", req.ApartmentNumber)
			return nil, ErrResidentExists
		}
		s.logger.Error("Create: repository error for apartment=%s: %v", req.ApartmentNumber, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: registered resident id=%d, apartment=%s", created.ID, created.ApartmentNumber)
	s.notifier.SendActivationEmail(ctx, created, token)

	return models.FromDomainResident(created), nil
}

// Activate активирует аккаунт жителя по токену и устанавливает пароль
func (s *Service) Activate(ctx context.Context, req *models.ActivateRequest) error {
	s.logger.Info("Activate: activating account by token")

	if req.Token == "" || len(req.Password) < 8 {
		s.logger.Warn("Activate: invalid token or password")
		return fmt.Errorf("%w: token and password (min 8 chars) are required", ErrInvalidInput)
	}

	resident, err := s.residentRepo.GetByActivationToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, residentRepo.ErrResidentNotFound) {
			s.logger.Warn("Activate: activation token not found")
			return ErrActivationTokenInvalid
		}
		s.logger.Error("Activate: repository error: %v", err)
		return fmt.Errorf("%w: Activate - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if !resident.CanActivate(now) {
		if resident.ActivationTokenExpiry != nil && !resident.ActivationTokenExpiry.After(now) {
			s.logger.Warn("Activate: token expired for resident id=%d", resident.ID)
			return ErrActivationTokenExpired
		}
		s.logger.Warn("Activate: resident id=%d cannot be activated", resident.ID)
		return ErrActivationTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Activate: failed to hash password for resident id=%d: %v", resident.ID, err)
		return fmt.Errorf("%w: Activate - failed to hash password: %v", ErrInternal, err)
	}

	if err := s.residentRepo.Activate(ctx, resident.ID, string(hash)); err != nil {
		s.logger.Error("Activate: failed to activate resident id=%d: %v", resident.ID, err)
		return fmt.Errorf("%w: Activate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Activate: resident id=%d activated", resident.ID)
	return nil
}

// Login аутентифицирует жителя по квартире и паролю, выдает JWT.
// Неактивированный аккаунт и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.logger.Info("Login: resident login attempt for apartment=%s", req.ApartmentNumber)

	resident, err := s.residentRepo.GetByApartment(ctx, req.ApartmentNumber)
	if err != nil {
		if errors.Is(err, residentRepo.ErrResidentNotFound) {
			s.logger.Warn("Login: resident not found for apartment=%s", req.ApartmentNumber)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for apartment=%s: %v", req.ApartmentNumber, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !resident.IsActive {
		s.logger.Warn("Login: account not activated for apartment=%s", req.ApartmentNumber)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(resident.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for apartment=%s", req.ApartmentNumber)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.IssueToken(resident.ID, auth.RoleResident)
	if err != nil {
		s.logger.Error("Login: failed to issue token for resident id=%d: %v", resident.ID, err)
		return nil, fmt.Errorf("%w: Login - failed to issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: resident id=%d logged in", resident.ID)
	return &models.LoginResponse{Token: token}, nil
}

// GetByID получает жителя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ResidentResponse, error) {
	resident, err := s.residentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, residentRepo.ErrResidentNotFound) {
			s.logger.Warn("GetByID: resident id=%d not found", id)
			return nil, ErrResidentNotFound
		}
		s.logger.Error("GetByID: repository error for resident id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainResident(resident), nil
}

// List получает всех жителей (без мягко удаленных)
func (s *Service) List(ctx context.Context) (*models.ResidentListResponse, error) {
	residents, err := s.residentRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d residents", len(residents))
	return models.FromDomainResidentList(residents), nil
}

// Update обновляет контактные данные жителя
func (s *Service) Update(ctx context.Context, req *models.UpdateResidentRequest) (*models.ResidentResponse, error) {
	s.logger.Info("Update: updating resident id=%d", req.ResidentID)

	if err := validateContacts(req.Name, req.Email, req.Phone, req.ApartmentNumber); err != nil {
		s.logger.Warn("Update: validation failed for resident id=%d: %v", req.ResidentID, err)
		return nil, err
	}

	resident, err := s.residentRepo.GetByID(ctx, req.ResidentID)
	if err != nil {
		if errors.Is(err, residentRepo.ErrResidentNotFound) {
			s.logger.Warn("Update: resident id=%d not found", req.ResidentID)
			return nil, ErrResidentNotFound
		}
		s.logger.Error("Update: repository error for resident id=%d: %v", req.ResidentID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	resident.Name = req.Name
	resident.Email = req.Email
	resident.Phone = req.Phone
	resident.ApartmentNumber = req.ApartmentNumber

	if err := s.residentRepo.Update(ctx, resident); err != nil {
		if errors.Is(err, residentRepo.ErrResidentExists) {
			s.logger.Warn("Update: contact data conflicts for resident id=%d", req.ResidentID)
			return nil, ErrResidentExists
		}
		if errors.Is(err, residentRepo.ErrResidentNotFound) {
			return nil, ErrResidentNotFound
		}
		s.logger.Error("Update: repository error for resident id=%d: %v", req.ResidentID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: resident id=%d updated", req.ResidentID)
	return models.FromDomainResident(resident), nil
}

// Delete мягко удаляет жителя. История его бронирований сохраняется.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting resident id=%d", id)

	if err := s.residentRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, residentRepo.ErrResidentNotFound) {
			s.logger.Warn("Delete: resident id=%d not found", id)
			return ErrResidentNotFound
		}
		s.logger.Error("Delete: repository error for resident id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: resident id=%d deleted", id)
	return nil
}

// Вспомогательные функции

func validateContacts(name, email, phone, apartment string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if strings.TrimSpace(apartment) == "" {
		return fmt.Errorf("%w: apartment number is required", ErrInvalidInput)
	}
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
