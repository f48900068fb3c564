package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе диспетчера
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrDispatchDegraded возвращается, когда диспетчер уведомлений недоступен.
	// Переход статуса при этом считается успешным: доставка уведомлений best-effort
	// и никогда не откатывает состояние бронирования.
	ErrDispatchDegraded = errors.New("notifier unavailable: delivery degraded")
)
