package models

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Request модели

// TimeRangeInput диапазон доступности из запроса
type TimeRangeInput struct {
	Start    string `json:"start"`    // "09:00"
	End      string `json:"end"`      // "13:00"
	Interval int    `json:"interval"` // Шаг сетки в минутах
}

// TimeBlockInput блок недоступности из запроса
type TimeBlockInput struct {
	ID    string `json:"id,omitempty"` // Пустой ID заполняется сервисом
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpdateDayRequest запрос на настройку дня
type UpdateDayRequest struct {
	OwnerID int64            `json:"ownerId"`
	Date    time.Time        `json:"date"`
	Ranges  []TimeRangeInput `json:"ranges"`
	Blocks  []TimeBlockInput `json:"blocks,omitempty"`
}

// UpdateProfileRequest запрос на настройку профиля владельца
type UpdateProfileRequest struct {
	OwnerID          int64  `json:"ownerId"`
	DisplayName      string `json:"displayName"`
	BufferMinutes    int    `json:"bufferMinutes"`
	OfferedDurations []int  `json:"offeredDurations"`
}

// Response модели

// TimeRangeResponse диапазон доступности
type TimeRangeResponse struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Interval int    `json:"interval"`
}

// TimeBlockResponse блок недоступности
type TimeBlockResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayResponse настройка дня с индикатором открытых слотов
type DayResponse struct {
	OwnerID       int64               `json:"ownerId"`
	Date          string              `json:"date"` // "2025-10-15"
	Ranges        []TimeRangeResponse `json:"ranges"`
	Blocks        []TimeBlockResponse `json:"blocks"`
	BufferMinutes int                 `json:"bufferMinutes"`
	OpenToday     *bool               `json:"openToday,omitempty"` // Только для сегодняшней даты
}

// ProfileResponse профиль владельца
type ProfileResponse struct {
	OwnerID          int64  `json:"ownerId"`
	DisplayName      string `json:"displayName"`
	BufferMinutes    int    `json:"bufferMinutes"`
	OfferedDurations []int  `json:"offeredDurations"`
	PublicSlug       string `json:"publicSlug"`
}

// Методы конвертации

// ToDomainRanges конвертирует диапазоны запроса в domain модели
func ToDomainRanges(inputs []TimeRangeInput) []domain.TimeRange {
	ranges := make([]domain.TimeRange, 0, len(inputs))
	for _, in := range inputs {
		ranges = append(ranges, domain.TimeRange{
			Start:           types.TimeString(in.Start),
			End:             types.TimeString(in.End),
			IntervalMinutes: in.Interval,
		})
	}
	return ranges
}

// FromDomainRule конвертирует правило дня в DTO
func FromDomainRule(rule *domain.AvailabilityRule, bufferMinutes int) *DayResponse {
	resp := &DayResponse{
		OwnerID:       rule.OwnerID,
		Date:          rule.Date.Format(domain.DateFormat),
		Ranges:        make([]TimeRangeResponse, 0, len(rule.Ranges)),
		Blocks:        make([]TimeBlockResponse, 0, len(rule.Blocks)),
		BufferMinutes: bufferMinutes,
	}

	for _, r := range rule.Ranges {
		resp.Ranges = append(resp.Ranges, TimeRangeResponse{
			Start:    r.Start.String(),
			End:      r.End.String(),
			Interval: r.IntervalMinutes,
		})
	}
	for _, b := range rule.Blocks {
		resp.Blocks = append(resp.Blocks, TimeBlockResponse{
			ID:    b.ID,
			Title: b.Title,
			Start: b.Start.String(),
			End:   b.End.String(),
		})
	}

	return resp
}

// FromDomainProfile конвертирует профиль владельца в DTO
func FromDomainProfile(p *domain.OwnerProfile) *ProfileResponse {
	return &ProfileResponse{
		OwnerID:          p.OwnerID,
		DisplayName:      p.DisplayName,
		BufferMinutes:    p.BufferMinutes,
		OfferedDurations: p.OfferedDurations,
		PublicSlug:       p.PublicSlug,
	}
}
