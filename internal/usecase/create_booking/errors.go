package create_booking

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда владелец календаря не найден
	ErrOwnerNotFound = errors.New("create_booking: owner not found")

	// ErrValidation возвращается при нарушении предусловий запроса.
	// Текст ошибки называет некорректное поле; бронирование не создается.
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
