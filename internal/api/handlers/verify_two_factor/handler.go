package verify_two_factor

import (
	"errors"
	"net/http"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/service/admins"
	"github.com/m04kA/TSZH-FacilityService/internal/service/admins/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCodeInvalid        = "неверный код подтверждения"
	msgCodeExpired        = "срок действия кода истек"
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

// Handle POST /api/v1/auth/admin/2fa/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/admin/2fa/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.VerifyCode(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, admins.ErrCodeInvalid):
			h.logger.Warn("POST /auth/admin/2fa/verify - Invalid code for admin=%d", req.AdminID)
			handlers.RespondUnauthorized(w, msgCodeInvalid)

		case errors.Is(err, admins.ErrCodeExpired):
			h.logger.Warn("POST /auth/admin/2fa/verify - Expired code for admin=%d", req.AdminID)
			handlers.RespondUnauthorized(w, msgCodeExpired)

		default:
			h.logger.Error("POST /auth/admin/2fa/verify - Verification failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/admin/2fa/verify - Admin id=%d verified", req.AdminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
