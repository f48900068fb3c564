package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetDay(ctx context.Context, ownerID int64, date time.Time) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
