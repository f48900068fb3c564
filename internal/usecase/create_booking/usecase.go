package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	profileRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MeetingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-MeetingService/internal/service/schedule"
)

// UseCase use case для создания бронирования встречи
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

// Execute выполняет use case создания бронирования.
// Все предусловия проверяются до записи: при любом нарушении бронирование
// не создается. Проверка доступности слота и вставка выполняются в
// сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: owner=%d, date=%s, time=%s, duration=%d",
		req.OwnerID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата встречи не может быть в прошлом
	if schedule.IsDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date is in the past", ErrValidation)
	}

	var result *domain.Booking

	// 4. Проверка слота и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем профиль владельца (буфер, предлагаемые длительности)
		prof, err := uc.profileRepo.GetByOwnerID(txCtx, req.OwnerID)
		if err != nil {
			if errors.Is(err, profileRepo.ErrProfileNotFound) {
				uc.logger.Warn("CreateBooking: owner id=%d not found", req.OwnerID)
				return ErrOwnerNotFound
			}
			uc.logger.Error("CreateBooking: failed to get profile: %v", err)
			return fmt.Errorf("%w: failed to get owner profile: %v", ErrInternal, err)
		}

		// 4.2. Длительность должна входить в предлагаемый владельцем набор
		if !prof.OffersDuration(req.DurationMinutes) {
			uc.logger.Warn("CreateBooking: duration %d is not offered by owner=%d", req.DurationMinutes, req.OwnerID)
			return fmt.Errorf("%w: durationMinutes is not offered by the owner", ErrValidation)
		}

		// 4.3. Получаем правило доступности на дату
		rule, err := uc.availabilityRepo.GetByOwnerAndDate(txCtx, req.OwnerID, req.Date)
		if err != nil && !errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			uc.logger.Error("CreateBooking: failed to get rule: %v", err)
			return fmt.Errorf("%w: failed to get availability rule: %v", ErrInternal, err)
		}

		// 4.4. Получаем занимающие календарь бронирования на эту дату (FOR UPDATE)
		filter := domain.OwnerBookingsFilter{
			OwnerID:      req.OwnerID,
			StartDate:    &req.Date,
			EndDate:      &req.Date,
			OnlyAdmitted: true,
		}

		bookings, err := uc.bookingRepo.GetByOwnerWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.5. Запрошенное время должно быть меткой из текущей выдачи резолвера
		// с достаточной максимальной длительностью
		slots, err := schedule.AvailableSlots(rule, bookings, prof.BufferMinutes)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve slots: %v", err)
			return fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
		}
		if schedule.IsSameDay(req.Date, now) {
			slots = schedule.FilterPast(slots, now)
		}

		slot := schedule.SlotFor(slots, req.StartTime)
		if slot == nil {
			uc.logger.Warn("CreateBooking: startTime %s is not an available slot for owner=%d", req.StartTime, req.OwnerID)
			return fmt.Errorf("%w: startTime is not an available slot", ErrValidation)
		}
		if slot.MaxDurationMinutes < req.DurationMinutes {
			uc.logger.Warn("CreateBooking: slot %s allows at most %d minutes, requested %d",
				req.StartTime, slot.MaxDurationMinutes, req.DurationMinutes)
			return fmt.Errorf("%w: durationMinutes exceeds the slot's maximum duration", ErrValidation)
		}

		// 4.6. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			OwnerID:         req.OwnerID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusPending,
			RequesterName:   req.RequesterName,
			RequesterEmail:  req.RequesterEmail,
			RequesterPhone:  req.RequesterPhone,
			Subject:         req.Subject,
			Location:        req.Location,
			Invitees:        req.Invitees,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d in status=%s", result.ID, result.Status)

	// 5. Уведомляем владельца о новой заявке (best-effort, не влияет на результат)
	if err := uc.notifierClient.DispatchBestEffort(ctx, notifier.NewEvent(domain.EventBookingCreated, result)); err != nil {
		uc.logger.Warn("CreateBooking: notification delivery degraded for booking id=%d", result.ID)
	}

	return fromDomain(result), nil
}
