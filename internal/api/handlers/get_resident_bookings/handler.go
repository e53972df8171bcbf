package get_resident_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/api/middleware"
)

const (
	msgInvalidResidentID = "некорректный ID жителя"
	msgUnauthorized      = "требуется авторизация"
	msgAccessDenied      = "доступ к чужим бронированиям запрещен"
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

// Handle GET /api/v1/residents/{residentId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	residentID, err := strconv.ParseInt(mux.Vars(r)["residentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /residents/{residentId}/bookings - Invalid resident ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResidentID)
		return
	}

	// Житель видит только собственные бронирования
	if residentID != claims.UserID {
		h.logger.Warn("GET /residents/%d/bookings - Access denied for resident=%d", residentID, claims.UserID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.GetUpcoming(r.Context(), residentID)
	if err != nil {
		h.logger.Error("GET /residents/%d/bookings - Failed to list bookings: %v", residentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
