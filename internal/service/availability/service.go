package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	profileRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
	"github.com/m04kA/SMC-MeetingService/internal/service/schedule"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Service сервис управления расписанием и профилем владельца
type Service struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	profileRepo      ProfileRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	profileRepo ProfileRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		profileRepo:      profileRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// GetDay получает настройку дня владельца.
// Для сегодняшней даты ответ дополняется индикатором открытых слотов.
func (s *Service) GetDay(ctx context.Context, ownerID int64, date time.Time) (*models.DayResponse, error) {
	s.logger.Info("GetDay: fetching rule for owner=%d, date=%s", ownerID, date.Format(domain.DateFormat))

	rule, err := s.availabilityRepo.GetByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			// День без настройки отдаётся пустым
			rule = &domain.AvailabilityRule{OwnerID: ownerID, Date: date}
		} else {
			s.logger.Error("GetDay: repository error for owner=%d: %v", ownerID, err)
			return nil, fmt.Errorf("%w: GetDay - repository error: %v", ErrInternal, err)
		}
	}

	bufferMinutes := domain.DefaultBufferMinutes
	prof, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil && !errors.Is(err, profileRepo.ErrProfileNotFound) {
		s.logger.Error("GetDay: failed to get profile for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetDay - failed to get profile: %v", ErrInternal, err)
	}
	if prof != nil {
		bufferMinutes = prof.BufferMinutes
	}

	resp := models.FromDomainRule(rule, bufferMinutes)

	now := s.timeProvider.Now()
	if schedule.IsSameDay(date, now) {
		day := schedule.DateOnly(date)
		bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, domain.OwnerBookingsFilter{
			OwnerID:      ownerID,
			StartDate:    &day,
			EndDate:      &day,
			OnlyAdmitted: true,
		})
		if err != nil {
			s.logger.Error("GetDay: failed to get bookings for owner=%d: %v", ownerID, err)
			return nil, fmt.Errorf("%w: GetDay - failed to get bookings: %v", ErrInternal, err)
		}

		open, err := schedule.HasOpenSlots(rule, bookings, bufferMinutes, now)
		if err != nil {
			s.logger.Error("GetDay: failed to resolve slots for owner=%d: %v", ownerID, err)
			return nil, fmt.Errorf("%w: GetDay - failed to resolve slots: %v", ErrInternal, err)
		}
		resp.OpenToday = &open
	}

	return resp, nil
}

// UpdateDay сохраняет настройку дня владельца.
// Некорректная конфигурация отклоняется целиком: частичных сохранений нет.
func (s *Service) UpdateDay(ctx context.Context, req *models.UpdateDayRequest) (*models.DayResponse, error) {
	s.logger.Info("UpdateDay: updating rule for owner=%d, date=%s, ranges=%d, blocks=%d",
		req.OwnerID, req.Date.Format(domain.DateFormat), len(req.Ranges), len(req.Blocks))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	ranges, err := s.validateRanges(req.Ranges)
	if err != nil {
		s.logger.Warn("UpdateDay: invalid ranges for owner=%d: %v", req.OwnerID, err)
		return nil, err
	}

	blocks, err := s.validateBlocks(req.Blocks)
	if err != nil {
		s.logger.Warn("UpdateDay: invalid blocks for owner=%d: %v", req.OwnerID, err)
		return nil, err
	}

	rule := &domain.AvailabilityRule{
		OwnerID: req.OwnerID,
		Date:    schedule.DateOnly(req.Date),
		Ranges:  ranges,
		Blocks:  blocks,
	}

	saved, err := s.availabilityRepo.Upsert(ctx, rule)
	if err != nil {
		s.logger.Error("UpdateDay: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: UpdateDay - repository error: %v", ErrInternal, err)
	}

	bufferMinutes := domain.DefaultBufferMinutes
	if prof, err := s.profileRepo.GetByOwnerID(ctx, req.OwnerID); err == nil {
		bufferMinutes = prof.BufferMinutes
	}

	s.logger.Info("UpdateDay: successfully updated rule id=%d for owner=%d", saved.ID, req.OwnerID)
	return models.FromDomainRule(saved, bufferMinutes), nil
}

// GetProfile получает профиль владельца
func (s *Service) GetProfile(ctx context.Context, ownerID int64) (*models.ProfileResponse, error) {
	prof, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("GetProfile: profile for owner=%d not found", ownerID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("GetProfile: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProfile(prof), nil
}

// UpdateProfile сохраняет профиль владельца.
// Публичный slug назначается при первом сохранении и далее не меняется.
func (s *Service) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("UpdateProfile: updating profile for owner=%d", req.OwnerID)

	if req.DisplayName == "" {
		return nil, fmt.Errorf("%w: displayName is required", ErrInvalidInput)
	}
	if req.BufferMinutes < domain.MinBufferMinutes || req.BufferMinutes > domain.MaxBufferMinutes {
		return nil, fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	durations := req.OfferedDurations
	if len(durations) == 0 {
		durations = domain.DefaultOfferedDurations
	}
	for _, d := range durations {
		if d <= 0 {
			return nil, fmt.Errorf("%w: offered durations must be positive", ErrInvalidInput)
		}
	}

	profile := &domain.OwnerProfile{
		OwnerID:          req.OwnerID,
		DisplayName:      req.DisplayName,
		BufferMinutes:    req.BufferMinutes,
		OfferedDurations: durations,
		PublicSlug:       uuid.NewString(),
	}

	saved, err := s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		s.logger.Error("UpdateProfile: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfile: successfully updated profile for owner=%d", req.OwnerID)
	return models.FromDomainProfile(saved), nil
}

// Валидация

func (s *Service) validateRanges(inputs []models.TimeRangeInput) ([]domain.TimeRange, error) {
	ranges := make([]domain.TimeRange, 0, len(inputs))

	for i, in := range inputs {
		start, err := types.NewTimeStringFromString(in.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: range %d: start: %v", ErrInvalidRange, i, err)
		}
		end, err := types.NewTimeStringFromString(in.End)
		if err != nil {
			return nil, fmt.Errorf("%w: range %d: end: %v", ErrInvalidRange, i, err)
		}
		// Диапазон со start >= end допустим: он сохраняется, но не дает слотов
		if in.Interval < domain.MinIntervalMinutes || in.Interval > domain.MaxIntervalMinutes {
			return nil, fmt.Errorf("%w: range %d: interval must be between %d and %d minutes",
				ErrInvalidRange, i, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
		}

		ranges = append(ranges, domain.TimeRange{
			Start:           start,
			End:             end,
			IntervalMinutes: in.Interval,
		})
	}

	return ranges, nil
}

func (s *Service) validateBlocks(inputs []models.TimeBlockInput) ([]domain.TimeBlock, error) {
	blocks := make([]domain.TimeBlock, 0, len(inputs))

	for i, in := range inputs {
		start, err := types.NewTimeStringFromString(in.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: start: %v", ErrInvalidBlock, i, err)
		}
		end, err := types.NewTimeStringFromString(in.End)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: end: %v", ErrInvalidBlock, i, err)
		}
		// Блок со start >= end допустим: он сохраняется, но ничего не блокирует

		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}

		blocks = append(blocks, domain.TimeBlock{
			ID:    id,
			Title: in.Title,
			Start: start,
			End:   end,
		})
	}

	return blocks, nil
}
