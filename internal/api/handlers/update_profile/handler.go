package update_profile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOwnerID     = "некорректный ID владельца календаря"
	msgUnauthorized       = "не удалось определить пользователя"
	msgAccessDenied       = "доступ запрещён"
)

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	DisplayName      string `json:"displayName"`
	BufferMinutes    int    `json:"bufferMinutes"`
	OfferedDurations []int  `json:"offeredDurations,omitempty"`
}

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

// Handle PUT /api/v1/owners/{ownerId}/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("PUT /profile - Invalid owner id: %s", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if userID != ownerID {
		h.logger.Warn("PUT /profile - Access denied: owner_id=%d, user_id=%d", ownerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), &models.UpdateProfileRequest{
		OwnerID:          ownerID,
		DisplayName:      req.DisplayName,
		BufferMinutes:    req.BufferMinutes,
		OfferedDurations: req.OfferedDurations,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /profile - Validation failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /profile - Failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /profile - Profile updated: owner_id=%d", ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
