package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	generateSlots "github.com/m04kA/TSZH-FacilityService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFacilityID  = "некорректный ID объекта"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidRange       = "некорректный диапазон генерации слотов"
	msgFacilityNotFound   = "объект не найден"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/facilities/{facilityId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/facilities/{facilityId}/slots - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/facilities/%d/slots - Invalid request body: %v", facilityID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(facilityID)
	if err != nil {
		h.logger.Warn("POST /admin/facilities/%d/slots - Failed to parse request: %v", facilityID, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidRange), errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /admin/facilities/%d/slots - Invalid range: %v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, generateSlots.ErrFacilityNotFound):
			h.logger.Warn("POST /admin/facilities/%d/slots - Facility not found", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		default:
			h.logger.Error("POST /admin/facilities/%d/slots - Failed to generate slots: %v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/facilities/%d/slots - Generated slots: created=%d, skipped=%d",
		facilityID, result.CreatedCount, result.SkippedCount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
