package get_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца календаря"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized   = "не удалось определить пользователя"
	msgAccessDenied   = "доступ запрещён"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("GET /availability - Invalid owner id: %s", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if userID != ownerID {
		h.logger.Warn("GET /availability - Access denied: owner_id=%d, user_id=%d", ownerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %s", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDay(r.Context(), ownerID, date)
	if err != nil {
		h.logger.Error("GET /availability - Failed: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
