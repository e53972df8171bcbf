package list_residents

import (
	"net/http"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
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

// Handle GET /api/v1/admin/residents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/residents - Failed to list residents: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
