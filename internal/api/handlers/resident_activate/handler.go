package resident_activate

import (
	"errors"
	"net/http"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/service/residents"
	"github.com/m04kA/TSZH-FacilityService/internal/service/residents/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "требуются токен активации и пароль не короче 8 символов"
	msgTokenInvalid       = "токен активации недействителен"
	msgTokenExpired       = "срок действия токена активации истек"
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

// Handle POST /api/v1/auth/resident/activate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ActivateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/resident/activate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Activate(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, residents.ErrInvalidInput):
			h.logger.Warn("POST /auth/resident/activate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, residents.ErrActivationTokenInvalid):
			h.logger.Warn("POST /auth/resident/activate - Token invalid")
			handlers.RespondBadRequest(w, msgTokenInvalid)

		case errors.Is(err, residents.ErrActivationTokenExpired):
			h.logger.Warn("POST /auth/resident/activate - Token expired")
			handlers.RespondBadRequest(w, msgTokenExpired)

		default:
			h.logger.Error("POST /auth/resident/activate - Activation failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/resident/activate - Account activated")
	w.WriteHeader(http.StatusNoContent)
}
