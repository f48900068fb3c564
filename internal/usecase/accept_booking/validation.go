package accept_booking

import (
	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// hasAdmittedOverlap проверяет, пересекается ли кандидат с уже занятыми
// интервалами того же дня. Оба интервала расширяются буфером владельца.
func hasAdmittedOverlap(candidate *domain.Booking, dayBookings []*domain.Booking, bufferMinutes int) (bool, error) {
	candStart, err := candidate.StartTime.Minutes()
	if err != nil {
		return false, err
	}
	candEnd := candStart + candidate.DurationMinutes + bufferMinutes

	for _, other := range dayBookings {
		if other.ID == candidate.ID {
			continue
		}
		if !other.IsAdmitted() {
			continue
		}

		otherStart, err := other.StartTime.Minutes()
		if err != nil {
			return false, err
		}
		otherEnd := otherStart + other.DurationMinutes + bufferMinutes

		if candStart < otherEnd && otherStart < candEnd {
			return true, nil
		}
	}

	return false, nil
}
