package update_availability

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOwnerID     = "некорректный ID владельца календаря"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized       = "не удалось определить пользователя"
	msgAccessDenied       = "доступ запрещён"
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

// Handle PUT /api/v1/owners/{ownerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("PUT /availability - Invalid owner id: %s", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if userID != ownerID {
		h.logger.Warn("PUT /availability - Access denied: owner_id=%d, user_id=%d", ownerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(ownerID)
	if err != nil {
		h.logger.Warn("PUT /availability - Invalid date: %s", req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.UpdateDay(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange),
			errors.Is(err, availability.ErrInvalidBlock),
			errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /availability - Validation failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /availability - Failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability - Day updated: owner_id=%d, date=%s", ownerID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
