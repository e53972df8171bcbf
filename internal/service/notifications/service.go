package notifications

import (
	"context"
	"fmt"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// Service сервис уведомлений. Отправка писем не влияет на исход
// бизнес-операций: любая ошибка здесь логируется и гасится, а каждая
// попытка отправки фиксируется в журнале аудита.
type Service struct {
	mailClient   MailClient
	emailLogRepo EmailLogRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(mailClient MailClient, emailLogRepo EmailLogRepository, logger Logger) *Service {
	return &Service{
		mailClient:   mailClient,
		emailLogRepo: emailLogRepo,
		logger:       logger,
	}
}

// SendBookingConfirmation отправляет письмо о подтверждении бронирования
func (s *Service) SendBookingConfirmation(ctx context.Context, resident *domain.Resident, booking *domain.Booking) {
	subject := fmt.Sprintf("Бронирование подтверждено: %s", booking.FacilityName)
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВаше бронирование подтверждено.\n\nОбъект: %s\nДата: %s\nВремя: %s - %s\n",
		resident.Name,
		booking.FacilityName,
		booking.BookingDate.Format(domain.DateFormat),
		booking.StartTime,
		booking.EndTime,
	)

	s.send(ctx, resident.Email, subject, body, domain.EmailTypeBookingConfirmation)
}

// SendCancellationNotification отправляет письмо об отмене бронирования
func (s *Service) SendCancellationNotification(ctx context.Context, resident *domain.Resident, booking *domain.Booking, reason string) {
	subject := fmt.Sprintf("Бронирование отменено: %s", booking.FacilityName)
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВаше бронирование отменено.\n\nОбъект: %s\nДата: %s\nВремя: %s - %s\n",
		resident.Name,
		booking.FacilityName,
		booking.BookingDate.Format(domain.DateFormat),
		booking.StartTime,
		booking.EndTime,
	)
	if reason != "" {
		body += fmt.Sprintf("Причина: %s\n", reason)
	}

	s.send(ctx, resident.Email, subject, body, domain.EmailTypeBookingCancellation)
}

// SendActivationEmail отправляет письмо с токеном активации аккаунта
func (s *Service) SendActivationEmail(ctx context.Context, resident *domain.Resident, token string) {
	subject := "Активация аккаунта жителя"
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nДля вас создан аккаунт жителя (квартира %s).\nТокен активации: %s\nТокен действует %d часа.\n",
		resident.Name,
		resident.ApartmentNumber,
		token,
		domain.ActivationTokenTTLHours,
	)

	s.send(ctx, resident.Email, subject, body, domain.EmailTypeAccountActivation)
}

// SendTwoFactorCode отправляет одноразовый код входа администратору
func (s *Service) SendTwoFactorCode(ctx context.Context, admin *domain.Admin, code string) {
	subject := "Код подтверждения входа"
	body := fmt.Sprintf(
		"Код подтверждения входа: %s\nКод действует %d минут и может быть использован один раз.\n",
		code,
		domain.TwoFactorCodeTTLMinutes,
	)

	s.send(ctx, admin.Email, subject, body, domain.EmailTypeTwoFactorCode)
}

func (s *Service) send(ctx context.Context, to, subject, body string, emailType domain.EmailType) {
	status := domain.EmailStatusSent

	if err := s.mailClient.Send(ctx, to, subject, body); err != nil {
		status = domain.EmailStatusFailed
		s.logger.Error("send: failed to send %s email to %s: %v", emailType, to, err)
	} else {
		s.logger.Info("send: %s email sent to %s", emailType, to)
	}

	// Аудит фиксирует и неудачные попытки
	_, err := s.emailLogRepo.Create(ctx, &domain.EmailAuditLog{
		RecipientEmail: to,
		Subject:        subject,
		EmailType:      emailType,
		Status:         status,
	})
	if err != nil {
		s.logger.Error("send: failed to write email audit log for %s: %v", to, err)
	}
}
