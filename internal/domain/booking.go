package domain

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// BookingStatus represents the status of a meeting booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusAccepted BookingStatus = "accepted"
	StatusDeclined BookingStatus = "declined"
	StatusCanceled BookingStatus = "canceled"
	// StatusArranged устаревший статус подтвержденной встречи из ранних версий данных.
	// Для занятости и переходов отмены эквивалентен accepted, новые бронирования его не получают.
	StatusArranged BookingStatus = "arranged"
)

// Invitee additional meeting participant supplied by the requester
type Invitee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Booking represents a meeting request against an owner's calendar
type Booking struct {
	ID              int64
	OwnerID         int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	RequesterName  string
	RequesterEmail string
	RequesterPhone *string
	Subject        string
	Location       string
	Invitees       []Invitee

	CancellationNote *string
	RescheduledAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmitted returns true if the booking occupies calendar time
func (b *Booking) IsAdmitted() bool {
	return b.Status == StatusAccepted || b.Status == StatusArranged
}

// IsTerminal returns true if the booking reached a terminal status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusDeclined || b.Status == StatusCanceled
}

// CanBeAccepted returns true if the booking can transition to accepted
func (b *Booking) CanBeAccepted() bool {
	return b.Status == StatusPending
}

// CanBeDeclined returns true if the booking can transition to declined
func (b *Booking) CanBeDeclined() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can transition to canceled
func (b *Booking) CanBeCancelled() bool {
	return b.IsAdmitted()
}

// CanBeRescheduled returns true if the booking can be moved to a new slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusAccepted
}

// OwnerBookingsFilter фильтр для получения бронирований владельца календаря
type OwnerBookingsFilter struct {
	OwnerID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	OnlyAdmitted    bool           // Только занимающие календарь (accepted/arranged)
	IncludeInactive bool           // Включать ли терминальные бронирования (declined, canceled)
}
