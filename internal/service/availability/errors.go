package availability

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль владельца не найден
	ErrProfileNotFound = errors.New("owner profile not found")

	// ErrInvalidRange возвращается при некорректном диапазоне доступности
	ErrInvalidRange = errors.New("invalid time range")

	// ErrInvalidBlock возвращается при некорректном блоке недоступности
	ErrInvalidBlock = errors.New("invalid time block")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
