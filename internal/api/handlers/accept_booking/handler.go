package accept_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	acceptBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/accept_booking"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgUnauthorized      = "не удалось определить пользователя"
	msgBookingNotFound   = "бронирование не найдено"
	msgAccessDenied      = "доступ запрещён"
	msgInvalidTransition = "подтвердить можно только ожидающую заявку"
	msgSlotTaken         = "выбранный временной слот уже занят"
)

type Handler struct {
	useCase AcceptBookingUseCase
	logger  Logger
}

func NewHandler(useCase AcceptBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/accept - Invalid booking id: %s", vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), acceptBooking.Request{
		BookingID: bookingID,
		OwnerID:   ownerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/accept - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, acceptBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/accept - Access denied: booking_id=%d, owner_id=%d", bookingID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, acceptBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/accept - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, acceptBooking.ErrSlotTaken):
			h.logger.Warn("PATCH /bookings/accept - Slot taken: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("PATCH /bookings/accept - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/accept - Booking accepted: booking_id=%d, owner_id=%d", bookingID, ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
