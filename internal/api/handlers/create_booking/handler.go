package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOwnerID     = "некорректный ID владельца календаря"
	msgInvalidDateOrTime  = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgOwnerNotFound      = "владелец календаря не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/owners/{ownerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("POST /bookings - Invalid owner id: %s", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrOwnerNotFound):
			h.logger.Warn("POST /bookings - Owner not found: owner_id=%d", ownerID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, createBooking.ErrValidation):
			h.logger.Warn("POST /bookings - Validation failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, owner_id=%d", result.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
