package models

import (
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// Request модели

// CreateFacilityRequest запрос администратора на создание объекта
type CreateFacilityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// SetAvailabilityRequest запрос на включение/отключение объекта
type SetAvailabilityRequest struct {
	FacilityID  int64 `json:"-"`
	IsAvailable bool  `json:"isAvailable"`
}

// Response модели

// FacilityResponse ответ с данными объекта
type FacilityResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FacilityListResponse ответ со списком объектов
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// Методы конвертации

// FromDomainFacility конвертирует domain модель в DTO
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	if f == nil {
		return nil
	}

	return &FacilityResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Icon:        f.Icon,
		IsAvailable: f.IsAvailable,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// FromDomainFacilityList конвертирует список domain моделей в DTO
func FromDomainFacilityList(facilities []*domain.Facility) *FacilityListResponse {
	resp := &FacilityListResponse{
		Facilities: make([]FacilityResponse, 0, len(facilities)),
	}

	for _, facility := range facilities {
		if facilityResp := FromDomainFacility(facility); facilityResp != nil {
			resp.Facilities = append(resp.Facilities, *facilityResp)
		}
	}

	return resp
}
