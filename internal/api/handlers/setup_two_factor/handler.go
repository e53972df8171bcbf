package setup_two_factor

import (
	"errors"
	"net/http"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/api/middleware"
	"github.com/m04kA/TSZH-FacilityService/internal/service/admins"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgAdminNotFound = "администратор не найден"
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/2fa/setup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.SetupTwoFactor(r.Context(), claims.UserID); err != nil {
		switch {
		case errors.Is(err, admins.ErrAdminNotFound):
			h.logger.Warn("POST /admin/2fa/setup - Admin id=%d not found", claims.UserID)
			handlers.RespondNotFound(w, msgAdminNotFound)

		default:
			h.logger.Error("POST /admin/2fa/setup - Failed to enable 2FA for admin=%d: %v", claims.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/2fa/setup - 2FA enabled for admin=%d", claims.UserID)
	w.WriteHeader(http.StatusNoContent)
}
