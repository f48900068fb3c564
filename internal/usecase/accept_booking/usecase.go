package accept_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MeetingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-MeetingService/internal/service/schedule"
)

// UseCase use case подтверждения ожидающего бронирования владельцем
type UseCase struct {
	bookingRepo    BookingRepository
	profileRepo    ProfileRepository
	notifierClient NotifierClient
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	profileRepo ProfileRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		profileRepo:    profileRepo,
		notifierClient: notifierClient,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute переводит бронирование из pending в accepted.
// Перед подтверждением слот перепроверяется: между созданием заявки
// и её подтверждением владелец мог принять пересекающееся бронирование.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Читаем бронирование с блокировкой строки
		b, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, booking.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Проверяем владельца
		if b.OwnerID != req.OwnerID {
			return ErrAccessDenied
		}

		// 3. Подтверждать можно только ожидающие заявки
		if !b.CanBeAccepted() {
			return fmt.Errorf("%w: booking status is %s", ErrInvalidTransition, b.Status)
		}

		// 4. Буфер владельца
		bufferMinutes := domain.DefaultBufferMinutes
		prof, err := uc.profileRepo.GetByOwnerID(ctx, b.OwnerID)
		if err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
			return fmt.Errorf("%w: failed to get owner profile: %v", ErrInternal, err)
		}
		if prof != nil {
			bufferMinutes = prof.BufferMinutes
		}

		// 5. Занятые интервалы того же дня (с блокировкой)
		day := schedule.DateOnly(b.BookingDate)
		dayBookings, err := uc.bookingRepo.GetByOwnerWithFilter(ctx, domain.OwnerBookingsFilter{
			OwnerID:      b.OwnerID,
			StartDate:    &day,
			EndDate:      &day,
			OnlyAdmitted: true,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get day bookings: %v", ErrInternal, err)
		}

		// 6. Перепроверка слота
		taken, err := hasAdmittedOverlap(b, dayBookings, bufferMinutes)
		if err != nil {
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}
		if taken {
			return ErrSlotTaken
		}

		// 7. Переводим в accepted
		if err := uc.bookingRepo.UpdateStatus(ctx, b.ID, domain.StatusAccepted); err != nil {
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		b.Status = domain.StatusAccepted
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AcceptBooking: booking id=%d accepted by owner=%d", result.ID, result.OwnerID)

	// 8. Уведомление после коммита, сбой не откатывает подтверждение
	if err := uc.notifierClient.DispatchBestEffort(ctx, notifier.NewEvent(domain.EventBookingAccepted, result)); err != nil {
		uc.logger.Warn("AcceptBooking: notification delivery degraded for booking id=%d: %v", result.ID, err)
	}

	return fromDomain(result), nil
}
