package domain

import "time"

// OwnerProfile represents the booking configuration of a calendar owner.
// BufferMinutes is reserved after every admitted booking before the grid
// is considered free again.
type OwnerProfile struct {
	OwnerID          int64
	DisplayName      string
	BufferMinutes    int
	OfferedDurations []int  // Длительности (в минутах), которые владелец предлагает к бронированию
	PublicSlug       string // Публичный идентификатор страницы бронирования (для ссылок повторной записи)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OffersDuration returns true if the owner offers the given duration
func (p *OwnerProfile) OffersDuration(minutes int) bool {
	for _, d := range p.OfferedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// HasBuffer returns true if a post-meeting buffer is configured
func (p *OwnerProfile) HasBuffer() bool {
	return p.BufferMinutes > 0
}
