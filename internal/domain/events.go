package domain

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventBookingCreated     EventType = "booking.created"
	EventBookingAccepted    EventType = "booking.accepted"
	EventBookingDeclined    EventType = "booking.declined"
	EventBookingCanceled    EventType = "booking.canceled"
	EventBookingRescheduled EventType = "booking.rescheduled"
)

// BookingEvent событие жизненного цикла, потребляемое внешним диспетчером уведомлений.
// Диспетчер сам формирует письма и календарные вложения; событие несет только данные.
type BookingEvent struct {
	Type       EventType `json:"type"`
	EventID    string    `json:"eventId"` // уникальный идентификатор события (для дедупликации на стороне диспетчера)
	OccurredAt time.Time `json:"occurredAt"`

	BookingID       int64            `json:"bookingId"`
	OwnerID         int64            `json:"ownerId"`
	BookingDate     time.Time        `json:"bookingDate"`
	StartTime       types.TimeString `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          BookingStatus    `json:"status"`

	RequesterName  string    `json:"requesterName"`
	RequesterEmail string    `json:"requesterEmail"`
	Subject        string    `json:"subject"`
	Location       string    `json:"location"`
	Invitees       []Invitee `json:"invitees,omitempty"`

	// Только для booking.canceled
	CancellationNote *string `json:"cancellationNote,omitempty"`
	RebookingSlug    *string `json:"rebookingSlug,omitempty"`

	// Только для booking.rescheduled: прежний слот для сравнения в уведомлении
	OldBookingDate *time.Time        `json:"oldBookingDate,omitempty"`
	OldStartTime   *types.TimeString `json:"oldStartTime,omitempty"`
}
