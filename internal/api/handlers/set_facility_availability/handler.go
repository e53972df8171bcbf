package set_facility_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/service/facilities"
	"github.com/m04kA/TSZH-FacilityService/internal/service/facilities/models"
)

const (
	msgInvalidFacilityID  = "некорректный ID объекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgFacilityNotFound   = "объект не найден"
)

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/facilities/{facilityId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/facilities/{facilityId}/availability - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req models.SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/facilities/%d/availability - Invalid request body: %v", facilityID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.FacilityID = facilityID

	if err := h.service.SetAvailability(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("PUT /admin/facilities/%d/availability - Facility not found", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		default:
			h.logger.Error("PUT /admin/facilities/%d/availability - Failed to update facility: %v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/facilities/%d/availability - Availability set to %t", facilityID, req.IsAvailable)
	w.WriteHeader(http.StatusNoContent)
}
