package create_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/service/facilities"
	"github.com/m04kA/TSZH-FacilityService/internal/service/facilities/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные объекта"
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

// Handle POST /api/v1/admin/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /admin/facilities - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/facilities - Failed to create facility: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/facilities - Facility created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
