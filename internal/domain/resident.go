package domain

import "time"

// Resident represents a resident of the building
type Resident struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	ApartmentNumber string

	PasswordHash string
	IsActive     bool

	// Токен активации аккаунта: выдаётся при регистрации администратором,
	// сбрасывается после активации
	ActivationToken       *string
	ActivationTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// CanActivate проверяет, что токен активации ещё действует
func (r *Resident) CanActivate(now time.Time) bool {
	if r.IsActive || r.ActivationToken == nil || r.ActivationTokenExpiry == nil {
		return false
	}
	return r.ActivationTokenExpiry.After(now)
}

// IsDeleted returns true if the resident has been soft-deleted
func (r *Resident) IsDeleted() bool {
	return r.DeletedAt != nil
}
