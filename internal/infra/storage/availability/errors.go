package availability

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило доступности на дату не найдено
	ErrRuleNotFound = errors.New("availability.repository: rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")

	// ErrEncodeRule возвращается при ошибке сериализации диапазонов или блоков
	ErrEncodeRule = errors.New("availability.repository: failed to encode rule")
)
