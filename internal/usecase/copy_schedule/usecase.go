package copy_schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/schedule"
)

// UseCase use case заполнения пустых будущих дней по образцу прошлой недели
type UseCase struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute копирует диапазоны дней-образцов на пустые дни окна.
// День с уже настроенными диапазонами не перезаписывается, его блоки
// не трогаются, поэтому повторный вызов ничего не меняет.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.Days < 0 || req.OffsetDays < 0 {
		return nil, fmt.Errorf("%w: days and offsetDays must not be negative", ErrValidation)
	}

	days := req.Days
	if days == 0 {
		days = domain.DefaultCopyForwardDays
	}
	offsetDays := req.OffsetDays
	if offsetDays == 0 {
		offsetDays = domain.DefaultReferenceOffsetDays
	}

	today := schedule.DateOnly(uc.timeProvider.Now())

	uc.logger.Info("CopySchedule: owner=%d, window=%d days, offset=%d days", req.OwnerID, days, offsetDays)

	var copiedDays []string

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Загружаем правила окна вместе с днями-образцами
		from := today.AddDate(0, 0, -offsetDays)
		to := today.AddDate(0, 0, days-1)

		rules, err := uc.availabilityRepo.GetByOwnerAndDateRange(txCtx, req.OwnerID, from, to)
		if err != nil {
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		byDate := make(map[string]*domain.AvailabilityRule, len(rules))
		for _, rule := range rules {
			byDate[rule.Date.Format(domain.DateFormat)] = rule
		}

		// 2. Вычисляем патч
		patch := schedule.CopyForward(byDate, today, days, offsetDays)

		// 3. Сохраняем затронутые дни; блоки существующих правил сохраняются
		for dayKey, ranges := range patch {
			date, err := time.Parse(domain.DateFormat, dayKey)
			if err != nil {
				return fmt.Errorf("%w: failed to parse patch date: %v", ErrInternal, err)
			}

			rule := &domain.AvailabilityRule{
				OwnerID: req.OwnerID,
				Date:    date,
				Ranges:  ranges,
			}
			if existing, ok := byDate[dayKey]; ok {
				rule.Blocks = existing.Blocks
			}

			if _, err := uc.availabilityRepo.Upsert(txCtx, rule); err != nil {
				return fmt.Errorf("%w: failed to upsert rule for %s: %v", ErrInternal, dayKey, err)
			}

			copiedDays = append(copiedDays, dayKey)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(copiedDays)

	uc.logger.Info("CopySchedule: owner=%d, copied %d days", req.OwnerID, len(copiedDays))

	return &Response{CopiedDays: copiedDays}, nil
}
