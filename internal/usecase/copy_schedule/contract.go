package copy_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.AvailabilityRule, error)
	Upsert(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
