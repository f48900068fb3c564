package schedule

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// CopyForward заполняет пустые будущие дни по образцу прошлой недели.
//
// Для каждого дня окна [start, start+days), у которого нет ни одного диапазона,
// берется правило дня за offsetDays до него; если у того есть диапазоны, они
// копируются без изменений. День, у которого диапазоны уже есть, никогда не
// перезаписывается, поэтому операция идемпотентна.
//
// Чистое преобразование данных: возвращает патч "дата -> диапазоны",
// сохранение - ответственность вызывающего.
func CopyForward(rules map[string]*domain.AvailabilityRule, start time.Time, days, offsetDays int) map[string][]domain.TimeRange {
	if days <= 0 {
		days = domain.DefaultCopyForwardDays
	}
	if offsetDays <= 0 {
		offsetDays = domain.DefaultReferenceOffsetDays
	}

	patch := make(map[string][]domain.TimeRange)

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		dayKey := day.Format(domain.DateFormat)

		if rules[dayKey].HasRanges() {
			continue
		}

		source := rules[day.AddDate(0, 0, -offsetDays).Format(domain.DateFormat)]
		if !source.HasRanges() {
			continue
		}

		ranges := make([]domain.TimeRange, len(source.Ranges))
		copy(ranges, source.Ranges)
		patch[dayKey] = ranges
	}

	return patch
}
