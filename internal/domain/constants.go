package domain

// Default configuration values
const (
	DefaultBufferMinutes       = 0
	DefaultCopyForwardDays     = 14
	DefaultReferenceOffsetDays = 7
)

// DefaultOfferedDurations длительности, предлагаемые владельцем по умолчанию
var DefaultOfferedDurations = []int{30, 60}

// Business validation constants
const (
	// OccupancyStepMinutes минимальная адресуемая единица занятости.
	// Обход занятых меток всегда идет с этим шагом независимо от interval диапазона.
	OccupancyStepMinutes = 15

	MinIntervalMinutes        = 5
	MaxIntervalMinutes        = 480 // 8 часов
	MinBufferMinutes          = 0
	MaxBufferMinutes          = 240 // 4 часа
	MaxCancellationNoteLength = 500
	MaxSubjectLength          = 200
	MaxLocationLength         = 200
	MaxInviteesPerBooking     = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов
// Используется для фильтрации при выборке активных бронирований
var TerminalStatuses = []BookingStatus{
	StatusDeclined,
	StatusCanceled,
}

// AdmittedStatuses список статусов, занимающих время в календаре
// Используется при расчете занятых меток
var AdmittedStatuses = []BookingStatus{
	StatusAccepted,
	StatusArranged,
}
