package schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// AvailableSlots вычисляет упорядоченный список бронируемых слотов дня.
//
// Алгоритм:
//  1. Вычисляем занятые метки по бронированиям и блокам (с учетом буфера).
//  2. Для каждого диапазона правила генерируем метки и отбрасываем занятые.
//  3. Метку оставляем, только если метка + interval + буфер не выходит за конец
//     диапазона: слот целиком, включая буфер, должен помещаться в свой диапазон.
//  4. Метка, достижимая из нескольких диапазонов, бронируется с максимальной
//     из предлагаемых длительностей.
//  5. Результат сортируется по времени начала; дубликатов нет после шага 4.
//
// Гарантия: ни одна возвращенная метка не входит в BlockedMarks для тех же данных.
func AvailableSlots(rule *domain.AvailabilityRule, bookings []*domain.Booking, bufferMinutes int) ([]domain.AvailableSlot, error) {
	if rule == nil || len(rule.Ranges) == 0 {
		return []domain.AvailableSlot{}, nil
	}

	blocked := BlockedMarks(bookings, rule.Blocks, bufferMinutes)

	// Максимальная достижимая длительность по каждой метке
	best := make(map[types.TimeString]int)

	for _, r := range rule.Ranges {
		marks, err := GenerateSlots(r)
		if err != nil {
			return nil, err
		}

		rangeEndMin, err := r.End.Minutes()
		if err != nil {
			return nil, err
		}

		for _, mark := range marks {
			if _, taken := blocked[mark]; taken {
				continue
			}

			markMin, err := mark.Minutes()
			if err != nil {
				continue
			}

			// Слот с буфером должен уложиться в границы своего диапазона
			if markMin+r.IntervalMinutes+bufferMinutes > rangeEndMin {
				continue
			}

			if cur, ok := best[mark]; !ok || r.IntervalMinutes > cur {
				best[mark] = r.IntervalMinutes
			}
		}
	}

	slots := make([]domain.AvailableSlot, 0, len(best))
	for mark, duration := range best {
		slots = append(slots, domain.AvailableSlot{
			StartTime:          mark,
			MaxDurationMinutes: duration,
		})
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// FilterPast отбрасывает слоты, начинающиеся не позже текущего момента.
// Применяется только для сегодняшней даты.
func FilterPast(slots []domain.AvailableSlot, now time.Time) []domain.AvailableSlot {
	current := types.NewTimeString(now)

	filtered := make([]domain.AvailableSlot, 0, len(slots))
	for _, s := range slots {
		if s.StartTime.IsAfter(current) {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

// HasOpenSlots возвращает true, если на сегодня остался хотя бы один слот
// позже текущего момента. Используется как индикатор для публичной страницы,
// не как правило допуска.
func HasOpenSlots(rule *domain.AvailabilityRule, bookings []*domain.Booking, bufferMinutes int, now time.Time) (bool, error) {
	slots, err := AvailableSlots(rule, bookings, bufferMinutes)
	if err != nil {
		return false, err
	}
	return len(FilterPast(slots, now)) > 0, nil
}

// SlotFor возвращает слот c указанной меткой начала, если он присутствует
// в результате AvailableSlots, и nil иначе
func SlotFor(slots []domain.AvailableSlot, start types.TimeString) *domain.AvailableSlot {
	for i := range slots {
		if slots[i].StartTime == start {
			return &slots[i]
		}
	}
	return nil
}
