package models

import (
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
)

// Request модели

// CancelByResidentRequest запрос жителя на отмену бронирования
type CancelByResidentRequest struct {
	BookingID          int64
	ResidentID         int64
	CancellationReason string
}

// CancelByAdminRequest запрос администратора на отмену бронирования
type CancelByAdminRequest struct {
	BookingID          int64
	CancellationReason string
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID         int64  `json:"id"`
	FacilityID int64  `json:"facilityId"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "07:00"
	EndTime    string `json:"endTime"`   // "09:00"
	Status     string `json:"status"`
	Color      string `json:"color"`
}

// AvailabilityResponse ответ с расписанием объекта на дату
type AvailabilityResponse struct {
	FacilityID   int64          `json:"facilityId"`
	FacilityName string         `json:"facilityName"`
	Date         string         `json:"date"`
	Slots        []SlotResponse `json:"slots"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64  `json:"id"`
	ResidentID   int64  `json:"residentId"`
	FacilityID   int64  `json:"facilityId"`
	TimeSlotID   int64  `json:"timeSlotId"`
	FacilityName string `json:"facilityName"`
	BookingDate  string `json:"bookingDate"` // "2025-10-15"
	StartTime    string `json:"startTime"`   // "10:00"
	EndTime      string `json:"endTime"`     // "12:00"
	Status       string `json:"status"`

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// AdminBookingResponse бронирование в административной сводке
// с данными жителя
type AdminBookingResponse struct {
	BookingResponse

	ResidentName      string `json:"residentName"`
	ResidentApartment string `json:"residentApartment"`
	ResidentPhone     string `json:"residentPhone"`
}

// AdminBookingListResponse административная сводка на дату
type AdminBookingListResponse struct {
	Date     string                 `json:"date"`
	Bookings []AdminBookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель слота в DTO
func FromDomainSlot(s *domain.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		FacilityID: s.FacilityID,
		Date:       s.Date.Format(domain.DateFormat),
		StartTime:  s.StartTime.String(),
		EndTime:    s.EndTime.String(),
		Status:     string(s.Status),
		Color:      s.Color,
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ResidentID:         b.ResidentID,
		FacilityID:         b.FacilityID,
		TimeSlotID:         b.TimeSlotID,
		FacilityName:       b.FacilityName,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledBy != nil {
		actor := string(*b.CancelledBy)
		resp.CancelledBy = &actor
	}
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
