package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// DeclineBookingRequest запрос на отклонение заявки
type DeclineBookingRequest struct {
	OwnerID int64 `json:"ownerId"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	OwnerID          int64   `json:"ownerId"`
	CancellationNote *string `json:"cancellationNote,omitempty"`
}

// GetOwnerBookingsRequest запрос на получение бронирований владельца
type GetOwnerBookingsRequest struct {
	OwnerID         int64      `json:"ownerId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отклонённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetOwnerBookingsRequest) ToDomainFilter() (domain.OwnerBookingsFilter, error) {
	filter := domain.OwnerBookingsFilter{
		OwnerID:         r.OwnerID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	OwnerID         int64  `json:"ownerId"`
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	RequesterName  string  `json:"requesterName"`
	RequesterEmail string  `json:"requesterEmail"`
	RequesterPhone *string `json:"requesterPhone,omitempty"`
	Subject        string  `json:"subject"`
	Location       string  `json:"location,omitempty"`

	Invitees []domain.Invitee `json:"invitees,omitempty"`

	CancellationNote *string `json:"cancellationNote,omitempty"`
	RescheduledAt    *string `json:"rescheduledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		OwnerID:          b.OwnerID,
		BookingDate:      b.BookingDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		DurationMinutes:  b.DurationMinutes,
		Status:           string(b.Status),
		RequesterName:    b.RequesterName,
		RequesterEmail:   b.RequesterEmail,
		RequesterPhone:   b.RequesterPhone,
		Subject:          b.Subject,
		Location:         b.Location,
		Invitees:         b.Invitees,
		CancellationNote: b.CancellationNote,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.RescheduledAt != nil {
		rescheduledStr := b.RescheduledAt.Format(time.RFC3339)
		resp.RescheduledAt = &rescheduledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusAccepted, domain.StatusDeclined,
		domain.StatusCanceled, domain.StatusArranged:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
