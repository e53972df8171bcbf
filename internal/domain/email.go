package domain

import "time"

// EmailType тип исходящего письма для журнала аудита
type EmailType string

const (
	EmailTypeAccountActivation   EmailType = "account_activation"
	EmailTypeBookingConfirmation EmailType = "booking_confirmation"
	EmailTypeBookingCancellation EmailType = "booking_cancellation"
	EmailTypeTwoFactorCode       EmailType = "two_factor_code"
)

// EmailStatus результат отправки письма
type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// EmailAuditLog запись журнала аудита исходящих писем.
// Фиксируется каждая попытка отправки, включая неудачные.
type EmailAuditLog struct {
	ID             int64
	RecipientEmail string
	Subject        string
	EmailType      EmailType
	Status         EmailStatus

	CreatedAt time.Time
}
