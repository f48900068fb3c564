package copy_schedule

// Request запрос на заполнение пустых дней расписания по образцу прошлой недели
type Request struct {
	OwnerID int64

	Days       int // Глубина окна в днях (0 - значение по умолчанию)
	OffsetDays int // Сдвиг до дня-образца в днях (0 - значение по умолчанию)
}

// Response результат заполнения
type Response struct {
	CopiedDays []string `json:"copied_days"` // Даты, получившие диапазоны, по возрастанию
}
