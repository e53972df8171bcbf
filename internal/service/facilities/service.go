package facilities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/TSZH-FacilityService/internal/service/facilities/models"
)

// Service сервис каталога объектов общего пользования
type Service struct {
	facilityRepo FacilityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса объектов
func NewService(facilityRepo FacilityRepository, logger Logger) *Service {
	return &Service{
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// Create создает новый объект. Объект сразу доступен для бронирования.
func (s *Service) Create(ctx context.Context, req *models.CreateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Create: creating facility name=%s", req.Name)

	if strings.TrimSpace(req.Name) == "" {
		s.logger.Warn("Create: facility name is required")
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	facility := &domain.Facility{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		IsAvailable: true,
	}

	created, err := s.facilityRepo.Create(ctx, facility)
	if err != nil {
		s.logger.Error("Create: repository error for facility name=%s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created facility id=%d", created.ID)
	return models.FromDomainFacility(created), nil
}

// List получает все доступные объекты, отсортированные по имени.
// Отключенные объекты скрыты из публичного списка, но их история остается.
func (s *Service) List(ctx context.Context) (*models.FacilityListResponse, error) {
	facilities, err := s.facilityRepo.ListAvailable(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d facilities", len(facilities))
	return models.FromDomainFacilityList(facilities), nil
}

// SetAvailability включает/отключает объект. Объекты никогда не удаляются
// физически - отключение только прячет их из публичного списка.
func (s *Service) SetAvailability(ctx context.Context, req *models.SetAvailabilityRequest) error {
	s.logger.Info("SetAvailability: facility id=%d, available=%t", req.FacilityID, req.IsAvailable)

	if err := s.facilityRepo.SetAvailability(ctx, req.FacilityID, req.IsAvailable); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("SetAvailability: facility id=%d not found", req.FacilityID)
			return ErrFacilityNotFound
		}
		s.logger.Error("SetAvailability: repository error for facility id=%d: %v", req.FacilityID, err)
		return fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetAvailability: facility id=%d updated", req.FacilityID)
	return nil
}
