package schedule

import (
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// BlockedMarks вычисляет множество занятых меток дня.
//
// Для каждого бронирования в статусе accepted/arranged метки обходятся от времени
// начала до времени начала + длительность + буфер; для каждого явного блока - от
// его начала до конца. Обход всегда идет с шагом domain.OccupancyStepMinutes (15 минут)
// независимо от interval диапазонов: это минимальная адресуемая единица занятости.
// Обход обрезается на границе суток.
func BlockedMarks(bookings []*domain.Booking, blocks []domain.TimeBlock, bufferMinutes int) map[types.TimeString]struct{} {
	marks := make(map[types.TimeString]struct{})

	for _, b := range bookings {
		if !b.IsAdmitted() {
			continue
		}

		startMin, err := b.StartTime.Minutes()
		if err != nil {
			// Бронирование с нечитаемым временем не может занимать сетку
			continue
		}

		walkMarks(marks, startMin, startMin+b.DurationMinutes+bufferMinutes)
	}

	for _, block := range blocks {
		if block.IsEmpty() {
			continue
		}

		startMin, err := block.Start.Minutes()
		if err != nil {
			continue
		}
		endMin, err := block.End.Minutes()
		if err != nil {
			continue
		}

		walkMarks(marks, startMin, endMin)
	}

	return marks
}

// walkMarks добавляет в set все метки от startMin строго до endMin с шагом 15 минут
func walkMarks(set map[types.TimeString]struct{}, startMin, endMin int) {
	for m := startMin; m < endMin && m < types.MinutesPerDay; m += domain.OccupancyStepMinutes {
		mark, err := types.FromMinutes(m)
		if err != nil {
			return
		}
		set[mark] = struct{}{}
	}
}
