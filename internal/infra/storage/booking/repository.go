package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"owner_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"requester_name",
	"requester_email",
	"requester_phone",
	"subject",
	"location",
	"invitees",
	"cancellation_note",
	"rescheduled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями встреч
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе pending.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	invitees, err := json.Marshal(booking.Invitees)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncodeInvitees, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"owner_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"requester_name",
			"requester_email",
			"requester_phone",
			"subject",
			"location",
			"invitees",
		).
		Values(
			booking.OwnerID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.RequesterName,
			booking.RequesterEmail,
			booking.RequesterPhone,
			booking.Subject,
			booking.Location,
			invitees,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) для переходов статуса.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByOwnerWithFilter получает бронирования владельца календаря с гибкой фильтрацией.
//
// Поддерживает фильтрацию по периоду, статусу, признаку занятости (OnlyAdmitted)
// и включению терминальных бронирований (IncludeInactive).
//
// Внутри транзакции при выборке на конкретную дату строки блокируются (FOR UPDATE) -
// это опора проверки допуска: параллельное принятие пересекающихся бронирований
// сериализуется на уровне БД.
func (r *Repository) GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_id": filter.OwnerID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	switch {
	case filter.Status != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	case filter.OnlyAdmitted:
		admitted := make([]string, len(domain.AdmittedStatuses))
		for i, s := range domain.AdmittedStatuses {
			admitted[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": admitted})
	case !filter.IncludeInactive:
		terminal := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminal[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminal})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if singleDay {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Блокировка дня для проверки допуска выполняется только в транзакции
	if dbmetrics.IsInTransaction(ctx) && singleDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// Cancel переводит бронирование в canceled с сохранением заметки об отмене
func (r *Repository) Cancel(ctx context.Context, id int64, note *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCanceled).
		Set("cancellation_note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Cancel", query, args)
}

// Reschedule переносит бронирование на новый слот, фиксируя момент переноса.
// Статус не меняется: перенос допустим только для accepted.
func (r *Repository) Reschedule(ctx context.Context, id int64, newDate time.Time, newTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", newDate).
		Set("start_time", newTime).
		Set("rescheduled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Reschedule", query, args)
}

// execExpectingRow выполняет UPDATE и возвращает ErrBookingNotFound, если строка не найдена
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var booking domain.Booking
	var invitees []byte
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&booking.ID,
		&booking.OwnerID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.RequesterName,
		&booking.RequesterEmail,
		&booking.RequesterPhone,
		&booking.Subject,
		&booking.Location,
		&invitees,
		&booking.CancellationNote,
		&booking.RescheduledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(invitees) > 0 {
		if err := json.Unmarshal(invitees, &booking.Invitees); err != nil {
			return nil, err
		}
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
