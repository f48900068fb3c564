package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) (*domain.AvailabilityRule, error)
	Upsert(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error)
}

// ProfileRepository интерфейс репозитория профилей владельцев
type ProfileRepository interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.OwnerProfile, error)
	Upsert(ctx context.Context, profile *domain.OwnerProfile) (*domain.OwnerProfile, error)
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
