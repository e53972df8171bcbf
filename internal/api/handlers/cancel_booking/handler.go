package cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/api/middleware"
	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings"
	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgUnauthorized        = "требуется авторизация"
	msgBookingNotFound     = "бронирование не найдено"
	msgAlreadyCancelled    = "бронирование уже отменено"
	msgCancellationExpired = "отмена возможна не позднее чем за 24 часа до начала"
)

// CancelBookingRequest HTTP request model (тело опционально)
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

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

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bookings/{bookingId} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Причина отмены для жителя опциональна, тело может отсутствовать
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("DELETE /bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.CancelByResident(r.Context(), &models.CancelByResidentRequest{
		BookingID:          bookingID,
		ResidentID:         claims.UserID,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/%d - Booking not found for resident=%d", bookingID, claims.UserID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("DELETE /bookings/%d - Already cancelled", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, bookings.ErrCancellationWindowExpired):
			h.logger.Warn("DELETE /bookings/%d - Cancellation window expired", bookingID)
			handlers.RespondBadRequest(w, msgCancellationExpired)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("DELETE /bookings/%d - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("DELETE /bookings/%d - Failed to cancel booking: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/%d - Booking cancelled by resident=%d", bookingID, claims.UserID)
	w.WriteHeader(http.StatusNoContent)
}
