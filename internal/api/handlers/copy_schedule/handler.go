package copy_schedule

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	copySchedule "github.com/m04kA/SMC-MeetingService/internal/usecase/copy_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOwnerID     = "некорректный ID владельца календаря"
	msgUnauthorized       = "не удалось определить пользователя"
	msgAccessDenied       = "доступ запрещён"
)

// CopyScheduleRequest HTTP request model
type CopyScheduleRequest struct {
	Days       int `json:"days,omitempty"`       // Глубина окна (по умолчанию 14)
	OffsetDays int `json:"offsetDays,omitempty"` // Сдвиг до образца (по умолчанию 7)
}

type Handler struct {
	useCase CopyScheduleUseCase
	logger  Logger
}

func NewHandler(useCase CopyScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/owners/{ownerId}/availability/copy-forward
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("POST /availability/copy-forward - Invalid owner id: %s", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if userID != ownerID {
		h.logger.Warn("POST /availability/copy-forward - Access denied: owner_id=%d, user_id=%d", ownerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	// Тело опционально: без него применяются значения по умолчанию
	var req CopyScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /availability/copy-forward - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), copySchedule.Request{
		OwnerID:    ownerID,
		Days:       req.Days,
		OffsetDays: req.OffsetDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, copySchedule.ErrValidation):
			h.logger.Warn("POST /availability/copy-forward - Validation failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /availability/copy-forward - Failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/copy-forward - Copied %d days for owner=%d", len(result.CopiedDays), ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
