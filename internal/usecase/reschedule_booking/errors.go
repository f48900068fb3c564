package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied бронирование принадлежит другому владельцу
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrInvalidTransition переносить можно только подтверждённые бронирования
	ErrInvalidTransition = errors.New("reschedule_booking: invalid status transition")

	// ErrValidation ошибка валидации входных данных
	ErrValidation = errors.New("reschedule_booking: validation error")

	// ErrSlotTaken целевой слот недоступен
	ErrSlotTaken = errors.New("reschedule_booking: slot no longer available")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("reschedule_booking: internal error")
)
