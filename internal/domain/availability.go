package domain

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// TimeRange объявленный владельцем интервал дня, внутри которого предлагаются слоты.
// IntervalMinutes задает шаг сетки слотов и одновременно предлагаемую длительность.
type TimeRange struct {
	Start           types.TimeString `json:"start"`
	End             types.TimeString `json:"end"`
	IntervalMinutes int              `json:"interval"`
}

// IsEmpty диапазон с start >= end не дает слотов (это не ошибка)
func (r TimeRange) IsEmpty() bool {
	return !r.Start.IsBefore(r.End)
}

// TimeBlock явная блокировка части дня, не зависящая от бронирований (например, обед)
type TimeBlock struct {
	ID    string           `json:"id"`
	Title string           `json:"title"`
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// IsEmpty блок с start >= end ничего не блокирует (это не ошибка)
func (b TimeBlock) IsEmpty() bool {
	return !b.Start.IsBefore(b.End)
}

// AvailabilityRule правило доступности владельца на конкретную календарную дату
type AvailabilityRule struct {
	ID      int64
	OwnerID int64
	Date    time.Time
	Ranges  []TimeRange
	Blocks  []TimeBlock

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRanges возвращает true, если на дату объявлен хотя бы один диапазон
func (r *AvailabilityRule) HasRanges() bool {
	return r != nil && len(r.Ranges) > 0
}

// AvailableSlot конкретный бронируемый слот: время начала и максимальная
// длительность, достижимая без нарушения границ диапазона и буфера
type AvailableSlot struct {
	StartTime          types.TimeString
	MaxDurationMinutes int
}
