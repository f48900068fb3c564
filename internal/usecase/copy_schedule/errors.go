package copy_schedule

import "errors"

var (
	// ErrValidation ошибка валидации входных данных
	ErrValidation = errors.New("copy_schedule: validation error")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("copy_schedule: internal error")
)
