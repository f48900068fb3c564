package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	OwnerID         int64            // ID владельца календаря
	Date            time.Time        // Дата встречи (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Запрошенная длительность (из предлагаемых владельцем)

	RequesterName  string           // Имя запрашивающего
	RequesterEmail string           // Email запрашивающего
	RequesterPhone *string          // Телефон (опционально)
	Subject        string           // Тема встречи
	Location       string           // Место встречи
	Invitees       []domain.Invitee // Дополнительные участники (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	OwnerID         int64            // ID владельца календаря
	Date            time.Time        // Дата встречи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования (pending)

	RequesterName  string           // Имя запрашивающего
	RequesterEmail string           // Email запрашивающего
	RequesterPhone *string          // Телефон
	Subject        string           // Тема встречи
	Location       string           // Место встречи
	Invitees       []domain.Invitee // Дополнительные участники

	CreatedAt time.Time // Время создания
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		Date:            b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		RequesterName:   b.RequesterName,
		RequesterEmail:  b.RequesterEmail,
		RequesterPhone:  b.RequesterPhone,
		Subject:         b.Subject,
		Location:        b.Location,
		Invitees:        b.Invitees,
		CreatedAt:       b.CreatedAt,
	}
}
