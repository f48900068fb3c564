package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Request запрос на перенос подтверждённого бронирования
type Request struct {
	BookingID int64
	OwnerID   int64

	NewDate      time.Time        // Новая дата встречи
	NewStartTime types.TimeString // Новое время начала
}

// Response перенесённое бронирование
type Response struct {
	ID              int64                `json:"id"`
	OwnerID         int64                `json:"owner_id"`
	BookingDate     string               `json:"booking_date"`
	StartTime       types.TimeString     `json:"start_time"`
	DurationMinutes int                  `json:"duration_minutes"`
	Status          domain.BookingStatus `json:"status"`
	RequesterName   string               `json:"requester_name"`
	RequesterEmail  string               `json:"requester_email"`
	Subject         string               `json:"subject"`
	RescheduledAt   *time.Time           `json:"rescheduled_at,omitempty"`
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		RequesterName:   b.RequesterName,
		RequesterEmail:  b.RequesterEmail,
		Subject:         b.Subject,
		RescheduledAt:   b.RescheduledAt,
	}
}
