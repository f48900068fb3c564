package copy_schedule

import (
	"context"

	copySchedule "github.com/m04kA/SMC-MeetingService/internal/usecase/copy_schedule"
)

type CopyScheduleUseCase interface {
	Execute(ctx context.Context, req copySchedule.Request) (*copySchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
