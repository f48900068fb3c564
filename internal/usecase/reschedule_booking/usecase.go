package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MeetingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-MeetingService/internal/service/schedule"
	"github.com/m04kA/SMC-MeetingService/pkg/ptr"
)

// UseCase use case переноса подтверждённого бронирования на новый слот
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	profileRepo      ProfileRepository
	notifierClient   NotifierClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	profileRepo ProfileRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		profileRepo:      profileRepo,
		notifierClient:   notifierClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute переносит accepted-бронирование на новую дату и время.
// Целевой слот проверяется резолвером так же, как при создании заявки:
// прежний слот бронирования при этом не учитывается как занятый.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking id=%d, new date=%s, new time=%s",
		req.BookingID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if req.NewDate.IsZero() {
		return nil, fmt.Errorf("%w: newDate is required", ErrValidation)
	}
	if err := req.NewStartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: newStartTime: %v", ErrValidation, err)
	}

	now := uc.timeProvider.Now()
	if schedule.IsDateInPast(req.NewDate, now) {
		return nil, fmt.Errorf("%w: newDate is in the past", ErrValidation)
	}

	var (
		result   *domain.Booking
		prevDate = req.NewDate
		prevTime = req.NewStartTime
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Читаем бронирование с блокировкой строки
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Проверяем владельца
		if b.OwnerID != req.OwnerID {
			return ErrAccessDenied
		}

		// 4. Переносить можно только подтверждённые бронирования
		if !b.CanBeRescheduled() {
			return fmt.Errorf("%w: booking status is %s", ErrInvalidTransition, b.Status)
		}

		prevDate = b.BookingDate
		prevTime = b.StartTime

		// 5. Профиль владельца (буфер)
		bufferMinutes := domain.DefaultBufferMinutes
		prof, err := uc.profileRepo.GetByOwnerID(txCtx, b.OwnerID)
		if err != nil && !errors.Is(err, profileRepo.ErrProfileNotFound) {
			return fmt.Errorf("%w: failed to get owner profile: %v", ErrInternal, err)
		}
		if prof != nil {
			bufferMinutes = prof.BufferMinutes
		}

		// 6. Правило доступности на новую дату
		rule, err := uc.availabilityRepo.GetByOwnerAndDate(txCtx, b.OwnerID, req.NewDate)
		if err != nil && !errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			return fmt.Errorf("%w: failed to get availability rule: %v", ErrInternal, err)
		}

		// 7. Занятые интервалы новой даты (с блокировкой), без самого бронирования
		day := schedule.DateOnly(req.NewDate)
		dayBookings, err := uc.bookingRepo.GetByOwnerWithFilter(txCtx, domain.OwnerBookingsFilter{
			OwnerID:      b.OwnerID,
			StartDate:    &day,
			EndDate:      &day,
			OnlyAdmitted: true,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get day bookings: %v", ErrInternal, err)
		}

		others := make([]*domain.Booking, 0, len(dayBookings))
		for _, other := range dayBookings {
			if other.ID == b.ID {
				continue
			}
			others = append(others, other)
		}

		// 8. Целевой слот должен существовать и вмещать длительность встречи
		slots, err := schedule.AvailableSlots(rule, others, bufferMinutes)
		if err != nil {
			return fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
		}
		if schedule.IsSameDay(req.NewDate, now) {
			slots = schedule.FilterPast(slots, now)
		}

		slot := schedule.SlotFor(slots, req.NewStartTime)
		if slot == nil {
			return fmt.Errorf("%w: newStartTime is not an available slot", ErrSlotTaken)
		}
		if slot.MaxDurationMinutes < b.DurationMinutes {
			return fmt.Errorf("%w: target slot allows at most %d minutes", ErrSlotTaken, slot.MaxDurationMinutes)
		}

		// 9. Переносим
		if err := uc.bookingRepo.Reschedule(txCtx, b.ID, req.NewDate, req.NewStartTime); err != nil {
			return fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
		}

		b.BookingDate = req.NewDate
		b.StartTime = req.NewStartTime
		b.RescheduledAt = &now
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.StartTime)

	// 10. Уведомление с прежними датой и временем встречи
	event := notifier.NewEvent(domain.EventBookingRescheduled, result)
	event.OldBookingDate = ptr.Ptr(prevDate)
	event.OldStartTime = ptr.Ptr(prevTime)
	if err := uc.notifierClient.DispatchBestEffort(ctx, event); err != nil {
		uc.logger.Warn("RescheduleBooking: notification delivery degraded for booking id=%d: %v", result.ID, err)
	}

	return fromDomain(result), nil
}
