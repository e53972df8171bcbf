package update_resident

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/service/residents"
	"github.com/m04kA/TSZH-FacilityService/internal/service/residents/models"
)

const (
	msgInvalidResidentID  = "некорректный ID жителя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные жителя"
	msgResidentNotFound   = "житель не найден"
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

// Handle PUT /api/v1/admin/residents/{residentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	residentID, err := strconv.ParseInt(mux.Vars(r)["residentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/residents/{residentId} - Invalid resident ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResidentID)
		return
	}

	var req models.UpdateResidentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/residents/%d - Invalid request body: %v", residentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ResidentID = residentID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, residents.ErrInvalidInput):
			h.logger.Warn("PUT /admin/residents/%d - Invalid input: %v", residentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, residents.ErrResidentNotFound):
			h.logger.Warn("PUT /admin/residents/%d - Resident not found", residentID)
			handlers.RespondNotFound(w, msgResidentNotFound)

		case errors.Is(err, residents.ErrResidentExists):
			h.logger.Warn("PUT /admin/residents/%d - Contact data conflict", residentID)
			handlers.RespondError(w, http.StatusConflict, msgResidentExists)

		default:
			h.logger.Error("PUT /admin/residents/%d - Failed to update resident: %v", residentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/residents/%d - Resident updated", residentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
