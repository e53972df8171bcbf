package models

import (
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// Request модели

// CreateResidentRequest запрос администратора на регистрацию жителя
type CreateResidentRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ApartmentNumber string `json:"apartmentNumber"`
}

// UpdateResidentRequest запрос на обновление данных жителя
type UpdateResidentRequest struct {
	ResidentID      int64  `json:"-"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ApartmentNumber string `json:"apartmentNumber"`
}

// ActivateRequest запрос на активацию аккаунта по токену
type ActivateRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// LoginRequest запрос на вход жителя
type LoginRequest struct {
	ApartmentNumber string `json:"apartmentNumber"`
	Password        string `json:"password"`
}

// Response модели

// ResidentResponse ответ с данными жителя
type ResidentResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	ApartmentNumber string    `json:"apartmentNumber"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ResidentListResponse ответ со списком жителей
type ResidentListResponse struct {
	Residents []ResidentResponse `json:"residents"`
}

// LoginResponse ответ с токеном сессии
type LoginResponse struct {
	Token string `json:"token"`
}

// Методы конвертации

// FromDomainResident конвертирует domain модель в DTO
func FromDomainResident(r *domain.Resident) *ResidentResponse {
	if r == nil {
		return nil
	}

	return &ResidentResponse{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		ApartmentNumber: r.ApartmentNumber,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainResidentList конвертирует список domain моделей в DTO
func FromDomainResidentList(residents []*domain.Resident) *ResidentListResponse {
	resp := &ResidentListResponse{
		Residents: make([]ResidentResponse, 0, len(residents)),
	}

	for _, resident := range residents {
		if residentResp := FromDomainResident(resident); residentResp != nil {
			resp.Residents = append(resp.Residents, *residentResp)
		}
	}

	return resp
}
