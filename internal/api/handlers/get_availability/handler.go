package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgFacilityNotFound  = "объект не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{facilityId}/availability - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /facilities/%d/availability - Invalid date: %v", facilityID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), facilityID, date)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/%d/availability - Facility not found", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		default:
			h.logger.Error("GET /facilities/%d/availability - Failed to get availability: %v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
