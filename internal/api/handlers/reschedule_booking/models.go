package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate      string `json:"newDate"`      // "2025-10-15"
	NewStartTime string `json:"newStartTime"` // "10:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, ownerID int64) (rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return rescheduleBooking.Request{}, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return rescheduleBooking.Request{}, err
	}

	return rescheduleBooking.Request{
		BookingID:    bookingID,
		OwnerID:      ownerID,
		NewDate:      newDate,
		NewStartTime: newStartTime,
	}, nil
}
