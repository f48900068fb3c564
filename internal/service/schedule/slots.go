package schedule

import (
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// GenerateSlots разворачивает диапазон в упорядоченную последовательность меток начала.
// Метки идут от r.Start с шагом r.IntervalMinutes строго до r.End.
// Диапазон со start >= end дает пустую последовательность (это не ошибка).
func GenerateSlots(r domain.TimeRange) ([]types.TimeString, error) {
	if r.IntervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidInterval, r.IntervalMinutes)
	}

	if r.IsEmpty() {
		return []types.TimeString{}, nil
	}

	startMin, err := r.Start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: range start: %v", ErrInvalidTime, err)
	}
	endMin, err := r.End.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: range end: %v", ErrInvalidTime, err)
	}

	marks := make([]types.TimeString, 0, (endMin-startMin)/r.IntervalMinutes+1)
	for m := startMin; m < endMin; m += r.IntervalMinutes {
		mark, err := types.FromMinutes(m)
		if err != nil {
			break
		}
		marks = append(marks, mark)
	}

	return marks, nil
}
