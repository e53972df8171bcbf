package twofactor

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	codeRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/twofactor"
)

// Service сервис одноразовых кодов двухфакторной аутентификации.
// Код живет 5 минут, хранится в БД (на администратора - не более одного)
// и сгорает при первой успешной проверке.
type Service struct {
	codeRepo     CodeRepository
	notifier     NotificationService
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса 2FA-кодов
func NewService(codeRepo CodeRepository, notifier NotificationService, logger Logger) *Service {
	return &Service{
		codeRepo:     codeRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Issue выдает новый код администратору и отправляет его на почту.
// Повторная выдача перезаписывает предыдущий код.
func (s *Service) Issue(ctx context.Context, admin *domain.Admin) error {
	code, err := generateCode()
	if err != nil {
		s.logger.Error("Issue: failed to generate code for admin id=%d: %v", admin.ID, err)
		return fmt.Errorf("%w: Issue - failed to generate code: %v", ErrInternal, err)
	}

	expiresAt := s.timeProvider.Now().Add(domain.TwoFactorCodeTTLMinutes * time.Minute)
	if err := s.codeRepo.Upsert(ctx, admin.ID, code, expiresAt); err != nil {
		s.logger.Error("Issue: failed to store code for admin id=%d: %v", admin.ID, err)
		return fmt.Errorf("%w: Issue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Issue: two-factor code issued for admin id=%d", admin.ID)
	s.notifier.SendTwoFactorCode(ctx, admin, code)
	return nil
}

// Verify проверяет код администратора. Код одноразовый: после успешной
// проверки запись удаляется, истекший код также удаляется.
func (s *Service) Verify(ctx context.Context, adminID int64, code string) error {
	stored, err := s.codeRepo.Get(ctx, adminID)
	if err != nil {
		if errors.Is(err, codeRepo.ErrCodeNotFound) {
			s.logger.Warn("Verify: no code issued for admin id=%d", adminID)
			return ErrCodeInvalid
		}
		s.logger.Error("Verify: repository error for admin id=%d: %v", adminID, err)
		return fmt.Errorf("%w: Verify - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if stored.IsExpired(now) {
		if err := s.codeRepo.Delete(ctx, adminID); err != nil {
			s.logger.Error("Verify: failed to evict expired code for admin id=%d: %v", adminID, err)
		}
		s.logger.Warn("Verify: code expired for admin id=%d", adminID)
		return ErrCodeExpired
	}

	if stored.Code != code {
		s.logger.Warn("Verify: wrong code for admin id=%d", adminID)
		return ErrCodeInvalid
	}

	if err := s.codeRepo.Delete(ctx, adminID); err != nil {
		s.logger.Error("Verify: failed to consume code for admin id=%d: %v", adminID, err)
		return fmt.Errorf("%w: Verify - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Verify: two-factor code verified for admin id=%d", adminID)
	return nil
}

// EvictExpired удаляет истекшие коды всех администраторов
func (s *Service) EvictExpired(ctx context.Context) error {
	deleted, err := s.codeRepo.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("EvictExpired: repository error: %v", err)
		return fmt.Errorf("%w: EvictExpired - repository error: %v", ErrInternal, err)
	}

	if deleted > 0 {
		s.logger.Info("EvictExpired: removed %d expired codes", deleted)
	}
	return nil
}

// generateCode генерирует 6-значный цифровой код
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
