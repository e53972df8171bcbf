package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/api/middleware"
	confirmBooking "github.com/m04kA/TSZH-FacilityService/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgSlotNotAvailable   = "временной слот уже занят другим жителем"
	msgResidentNotFound   = "житель не найден"
	msgFacilityNotFound   = "объект не найден"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(claims.UserID))
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: resident=%d, slot=%d", claims.UserID, req.TimeSlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, confirmBooking.ErrResidentNotFound):
			h.logger.Warn("POST /bookings - Resident not found: resident=%d", claims.UserID)
			handlers.RespondNotFound(w, msgResidentNotFound)

		case errors.Is(err, confirmBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /bookings - Facility not found: slot=%d", req.TimeSlotID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to confirm booking: resident=%d, slot=%d, error=%v",
				claims.UserID, req.TimeSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, resident=%d, slot=%d",
		result.ID, claims.UserID, req.TimeSlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
