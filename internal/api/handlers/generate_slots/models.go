package generate_slots

import (
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	generateSlots "github.com/m04kA/TSZH-FacilityService/internal/usecase/generate_slots"
	"github.com/m04kA/TSZH-FacilityService/pkg/types"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	Date  string `json:"date"`  // "2025-10-15"
	Start string `json:"start"` // "07:00"
	End   string `json:"end"`   // "21:00"
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	Color     string `json:"color"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	FacilityID   int64          `json:"facilityId"`
	Date         string         `json:"date"`
	CreatedCount int            `json:"createdCount"`
	SkippedCount int            `json:"skippedCount"`
	Slots        []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(facilityID int64) (*generateSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.Start)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.End)
	if err != nil {
		return nil, err
	}

	return &generateSlots.Request{
		FacilityID: facilityID,
		Date:       date,
		Start:      start,
		End:        end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	out := &GenerateSlotsResponse{
		FacilityID:   resp.FacilityID,
		Date:         resp.Date.Format(domain.DateFormat),
		CreatedCount: resp.CreatedCount,
		SkippedCount: resp.SkippedCount,
		Slots:        make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:        slot.ID,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Status:    slot.Status,
			Color:     slot.Color,
		})
	}

	return out
}
