package domain

import "time"

// Admin represents a building administrator account
type Admin struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     string
	TwoFactorEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
