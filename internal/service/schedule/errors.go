package schedule

import "errors"

var (
	// ErrInvalidInterval возвращается, когда шаг диапазона не положительный.
	// Без этой проверки генерация слотов зациклилась бы.
	ErrInvalidInterval = errors.New("schedule: range interval must be positive")

	// ErrInvalidTime возвращается при некорректном значении времени в правиле доступности
	ErrInvalidTime = errors.New("schedule: invalid time value")
)
