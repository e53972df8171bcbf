package domain

import "time"

// TwoFactorCode одноразовый код двухфакторной аутентификации администратора.
// На администратора хранится не более одного актуального кода.
type TwoFactorCode struct {
	AdminID   int64
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired проверяет, истек ли срок действия кода
func (c *TwoFactorCode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
