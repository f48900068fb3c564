package bookings

import (
	"context"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, note *string) error
}

// ProfileRepository интерфейс репозитория профилей владельцев
type ProfileRepository interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.OwnerProfile, error)
}

// NotifierClient интерфейс клиента диспетчера уведомлений
type NotifierClient interface {
	DispatchBestEffort(ctx context.Context, event *domain.BookingEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
