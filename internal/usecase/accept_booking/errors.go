package accept_booking

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("accept_booking: booking not found")

	// ErrAccessDenied бронирование принадлежит другому владельцу
	ErrAccessDenied = errors.New("accept_booking: access denied")

	// ErrInvalidTransition бронирование не находится в статусе pending
	ErrInvalidTransition = errors.New("accept_booking: invalid status transition")

	// ErrSlotTaken слот уже занят другим подтверждённым бронированием
	ErrSlotTaken = errors.New("accept_booking: slot no longer available")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("accept_booking: internal error")
)
