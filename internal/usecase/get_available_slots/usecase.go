package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	profileRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MeetingService/internal/service/schedule"
)

// UseCase use case для получения доступных слотов дня
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	profileRepo      ProfileRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	profileRepo ProfileRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		profileRepo:      profileRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: owner=%d, date=%s", req.OwnerID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if schedule.IsDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем профиль владельца (буфер)
	prof, err := uc.profileRepo.GetByOwnerID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			uc.logger.Warn("GetAvailableSlots: owner id=%d not found", req.OwnerID)
			return nil, ErrOwnerNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get profile for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to get owner profile: %v", ErrInternal, err)
	}

	// 4. Получаем правило доступности на дату
	rule, err := uc.availabilityRepo.GetByOwnerAndDate(ctx, req.OwnerID, req.Date)
	if err != nil && !errors.Is(err, availabilityRepo.ErrRuleNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get rule for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to get availability rule: %v", ErrInternal, err)
	}

	// День без правила - просто нет слотов
	if rule == nil {
		uc.logger.Info("GetAvailableSlots: no availability declared for owner=%d on %s",
			req.OwnerID, req.Date.Format(domain.DateFormat))
		return &Response{OwnerID: req.OwnerID, Date: req.Date, BufferMinutes: prof.BufferMinutes, Slots: []Slot{}}, nil
	}

	// 5. Получаем занимающие календарь бронирования на эту дату
	filter := domain.OwnerBookingsFilter{
		OwnerID:      req.OwnerID,
		StartDate:    &req.Date,
		EndDate:      &req.Date,
		OnlyAdmitted: true,
	}

	bookings, err := uc.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем доступные слоты
	slots, err := schedule.AvailableSlots(rule, bookings, prof.BufferMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve slots: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
	}

	// 7. На сегодня отбрасываем уже прошедшие метки
	if schedule.IsSameDay(req.Date, now) {
		slots = schedule.FilterPast(slots, now)
	}

	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{StartTime: s.StartTime, MaxDurationMinutes: s.MaxDurationMinutes}
	}

	uc.logger.Info("GetAvailableSlots: resolved %d slots for owner=%d, date=%s",
		len(result), req.OwnerID, req.Date.Format(domain.DateFormat))

	return &Response{
		OwnerID:       req.OwnerID,
		Date:          req.Date,
		BufferMinutes: prof.BufferMinutes,
		Slots:         result,
	}, nil
}
