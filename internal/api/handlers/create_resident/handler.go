package create_resident

import (
	"errors"
	"net/http"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/service/residents"
	"github.com/m04kA/TSZH-FacilityService/internal/service/residents/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные жителя"
	msgResidentExists     = "житель с таким email, телефоном или квартирой уже существует"
)

type Handler struct {
	service ResidentService
	logger  Logger
}

func NewHandler(service ResidentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/residents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateResidentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/residents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, residents.ErrInvalidInput):
			h.logger.Warn("POST /admin/residents - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, residents.ErrResidentExists):
			h.logger.Warn("POST /admin/residents - Resident exists: apartment=%s", req.ApartmentNumber)
			handlers.RespondError(w, http.StatusConflict, msgResidentExists)

		default:
			h.logger.Error("POST /admin/residents - Failed to create resident: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/residents - Resident created: id=%d, apartment=%s", result.ID, result.ApartmentNumber)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
