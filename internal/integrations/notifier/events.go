package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// NewEvent собирает событие жизненного цикла из текущего состояния бронирования.
// EventID уникален для каждой отправки: диспетчер использует его для дедупликации,
// идемпотентность повторов логического запроса - ответственность вызывающего.
func NewEvent(eventType domain.EventType, b *domain.Booking) *domain.BookingEvent {
	return &domain.BookingEvent{
		Type:       eventType,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),

		BookingID:       b.ID,
		OwnerID:         b.OwnerID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,

		RequesterName:  b.RequesterName,
		RequesterEmail: b.RequesterEmail,
		Subject:        b.Subject,
		Location:       b.Location,
		Invitees:       b.Invitees,
	}
}
