package decline_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgUnauthorized     = "не удалось определить пользователя"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "доступ запрещён"
	msgCannotDecline    = "отклонить можно только ожидающую заявку"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/decline - Invalid booking id: %s", vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	result, err := h.service.Decline(r.Context(), bookingID, &models.DeclineBookingRequest{OwnerID: ownerID})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/decline - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/decline - Access denied: booking_id=%d, owner_id=%d", bookingID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrCannotDecline):
			h.logger.Warn("PATCH /bookings/decline - Cannot decline: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotDecline)

		default:
			h.logger.Error("PATCH /bookings/decline - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/decline - Booking declined: booking_id=%d, owner_id=%d", bookingID, ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
