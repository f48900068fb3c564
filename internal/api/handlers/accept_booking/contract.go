package accept_booking

import (
	"context"

	acceptBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/accept_booking"
)

type AcceptBookingUseCase interface {
	Execute(ctx context.Context, req acceptBooking.Request) (*acceptBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
