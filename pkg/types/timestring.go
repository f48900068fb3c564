package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время суток в формате "HH:MM" (локальное время владельца календаря).
// Хранится как строка, чтобы без преобразований записываться в БД и JSON.
type TimeString string

// timeLayout формат времени суток
const timeLayout = "15:04"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfDayBounds возвращается, когда результат операции выходит за границы суток
	ErrOutOfDayBounds = errors.New("time is out of day bounds")
)

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(timeLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return TimeString(s), nil
}

// FromMinutes создает TimeString из количества минут с начала суток
func FromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfDayBounds, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение имеет формат "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на n минут вперед.
// Возвращает ошибку, если результат выходит за границы суток.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(m + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}
