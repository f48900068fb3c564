package get_profile

import (
	"context"

	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetProfile(ctx context.Context, ownerID int64) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
