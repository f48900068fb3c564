package get_available_slots

import (
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-MeetingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель бронируемого слота
type SlotResponse struct {
	StartTime          string `json:"startTime"`          // "10:00"
	MaxDurationMinutes int    `json:"maxDurationMinutes"` // Максимальная длительность
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	OwnerID       int64          `json:"ownerId"`
	Date          string         `json:"date"` // "2025-10-15"
	BufferMinutes int            `json:"bufferMinutes"`
	Slots         []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		OwnerID:       resp.OwnerID,
		Date:          resp.Date.Format(domain.DateFormat),
		BufferMinutes: resp.BufferMinutes,
		Slots:         make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime:          s.StartTime.String(),
			MaxDurationMinutes: s.MaxDurationMinutes,
		})
	}

	return out
}
