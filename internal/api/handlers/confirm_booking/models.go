package confirm_booking

import (
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	confirmBooking "github.com/m04kA/TSZH-FacilityService/internal/usecase/confirm_booking"
)

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	TimeSlotID int64 `json:"timeSlotId"`
	FacilityID int64 `json:"facilityId,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64  `json:"id"`
	ResidentID   int64  `json:"residentId"`
	FacilityID   int64  `json:"facilityId"`
	TimeSlotID   int64  `json:"timeSlotId"`
	FacilityName string `json:"facilityName"`
	BookingDate  string `json:"bookingDate"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmBookingRequest) ToUseCaseRequest(residentID int64) *confirmBooking.Request {
	return &confirmBooking.Request{
		ResidentID: residentID,
		TimeSlotID: r.TimeSlotID,
		FacilityID: r.FacilityID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		ResidentID:   resp.ResidentID,
		FacilityID:   resp.FacilityID,
		TimeSlotID:   resp.TimeSlotID,
		FacilityName: resp.FacilityName,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
