package get_profile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability"
)

const (
	msgInvalidOwnerID  = "некорректный ID владельца календаря"
	msgUnauthorized    = "не удалось определить пользователя"
	msgAccessDenied    = "доступ запрещён"
	msgProfileNotFound = "профиль владельца не найден"
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

// Handle GET /api/v1/owners/{ownerId}/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("GET /profile - Invalid owner id: %s", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if userID != ownerID {
		h.logger.Warn("GET /profile - Access denied: owner_id=%d, user_id=%d", ownerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.GetProfile(r.Context(), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrProfileNotFound):
			h.logger.Warn("GET /profile - Profile not found: owner_id=%d", ownerID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("GET /profile - Failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
