package admin_cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings"
	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgReasonRequired     = "причина отмены обязательна"
	msgBookingNotFound    = "бронирование не найдено"
	msgAlreadyCancelled   = "бронирование уже отменено"
)

// AdminCancelBookingRequest HTTP request model
type AdminCancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
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

// Handle DELETE /api/v1/admin/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/bookings/{bookingId} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AdminCancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /admin/bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.CancelByAdmin(r.Context(), &models.CancelByAdminRequest{
		BookingID:          bookingID,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/bookings/%d - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /admin/bookings/%d - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("DELETE /admin/bookings/%d - Already cancelled", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		default:
			h.logger.Error("DELETE /admin/bookings/%d - Failed to cancel booking: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings/%d - Booking cancelled by admin", bookingID)
	w.WriteHeader(http.StatusNoContent)
}
