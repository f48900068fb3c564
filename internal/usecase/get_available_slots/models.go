package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	OwnerID int64     // ID владельца календаря
	Date    time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	OwnerID       int64     // ID владельца календаря
	Date          time.Time // Дата, на которую запрашивались слоты
	BufferMinutes int       // Буфер владельца после каждой встречи
	Slots         []Slot    // Список доступных слотов, отсортированный по времени
}

// Slot модель бронируемого слота
type Slot struct {
	StartTime          types.TimeString // Время начала слота (например, "10:00")
	MaxDurationMinutes int              // Максимальная длительность, доступная для этого начала
}
