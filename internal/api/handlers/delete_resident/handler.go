package delete_resident

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/service/residents"
)

const (
	msgInvalidResidentID = "некорректный ID жителя"
	msgResidentNotFound  = "житель не найден"
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

// Handle DELETE /api/v1/admin/residents/{residentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	residentID, err := strconv.ParseInt(mux.Vars(r)["residentId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/residents/{residentId} - Invalid resident ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResidentID)
		return
	}

	if err := h.service.Delete(r.Context(), residentID); err != nil {
		switch {
		case errors.Is(err, residents.ErrResidentNotFound):
			h.logger.Warn("DELETE /admin/residents/%d - Resident not found", residentID)
			handlers.RespondNotFound(w, msgResidentNotFound)

		default:
			h.logger.Error("DELETE /admin/residents/%d - Failed to delete resident: %v", residentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/residents/%d - Resident deleted", residentID)
	w.WriteHeader(http.StatusNoContent)
}
