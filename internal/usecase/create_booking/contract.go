package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) (*domain.AvailabilityRule, error)
}

// ProfileRepository интерфейс репозитория профилей владельцев
type ProfileRepository interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.OwnerProfile, error)
}

// NotifierClient интерфейс клиента диспетчера уведомлений
type NotifierClient interface {
	DispatchBestEffort(ctx context.Context, event *domain.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
