package get_owner_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца календаря"
	msgInvalidFilter  = "некорректные параметры фильтрации"
	msgUnauthorized   = "не удалось определить пользователя"
	msgAccessDenied   = "доступ запрещён"
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

// Handle GET /api/v1/owners/{ownerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("GET /owners/bookings - Invalid owner id: %s", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	// Владелец видит только собственный список
	if userID != ownerID {
		h.logger.Warn("GET /owners/bookings - Access denied: owner_id=%d, user_id=%d", ownerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req, err := ParseQuery(ownerID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /owners/bookings - Invalid filter: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetOwnerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /owners/bookings - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /owners/bookings - Failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
